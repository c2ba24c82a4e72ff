package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/blockwright"
	"github.com/fwojciec/blockwright/theme"
)

// Run executes the inject command.
func (c *InjectCmd) Run(deps *Dependencies) error {
	raw, err := os.ReadFile(c.Data)
	if err != nil {
		return err
	}
	var data blockwright.ContentData
	if err := json.Unmarshal(raw, &data); err != nil {
		err = blockwright.Errorf(blockwright.EINVALID, "invalid content data: %v", err)
		fmt.Fprintf(deps.Stderr, "error: %s\n", blockwright.ErrorMessage(err))
		return err
	}

	access := blockwright.AccessEnabled
	if c.Frozen {
		access = blockwright.AccessFrozen
	}

	res, err := deps.Injector.Inject(deps.Ctx, blockwright.InjectRequest{
		DocumentID:   c.ID,
		Template:     blockwright.TemplateID(c.Template),
		Data:         data,
		Profile:      theme.NewFingerprinter(deps.Host.Theme, deps.Host.ThemeConfig()).Fingerprint(),
		Capabilities: theme.NewComponentMapper(deps.Host).Discover(),
		Access:       access,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blockwright.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "job %s: %s (%s, %d blocks, confidence %.2f)\n",
		res.JobID, res.State, res.RenderTarget, res.BlockCount, res.Confidence)
	for _, w := range res.Warnings {
		fmt.Fprintf(deps.Stdout, "  warning: %s\n", w)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/blockwright"
)

// Run executes the heading command.
func (c *HeadingCmd) Run(deps *Dependencies) error {
	res := deps.Mutator.ApplyHeadingChange(deps.Ctx, blockwright.HeadingChange{
		DocumentID: c.ID,
		OldText:    c.Old,
		NewText:    c.New,
		Level:      c.Level,
	})
	return report(deps, res)
}

// Run executes the append command.
func (c *AppendCmd) Run(deps *Dependencies) error {
	html, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}
	res := deps.Mutator.ApplyContentBlock(deps.Ctx, blockwright.ContentBlock{
		DocumentID: c.ID,
		HTML:       string(html),
		WidgetType: c.Widget,
		Position:   blockwright.Position(c.Position),
	})
	return report(deps, res)
}

// report prints a mutation result. Only error results fail the command;
// not_found and manual_action are answers, not failures.
func report(deps *Dependencies, res *blockwright.MutationResult) error {
	switch res.Status {
	case blockwright.MutationApplied:
		fmt.Fprintf(deps.Stdout, "applied (%s): %s\n", res.Target, res.Message)
	case blockwright.MutationNotFound:
		fmt.Fprintf(deps.Stdout, "not found (%s): %s\n", res.Target, res.Message)
	case blockwright.MutationManual:
		fmt.Fprintf(deps.Stdout, "manual action required: %s\n", res.Message)
		if m := res.Manual; m != nil {
			for i, step := range m.Steps {
				fmt.Fprintf(deps.Stdout, "  %d. %s\n", i+1, step)
			}
			if m.Content != "" {
				fmt.Fprintf(deps.Stdout, "\n%s\n", m.Content)
			}
		}
	default:
		fmt.Fprintf(deps.Stderr, "error: %s\n", res.Message)
		return blockwright.Errorf(blockwright.EINTERNAL, "%s", res.Message)
	}
	return nil
}

package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/blockwright"
)

// Run executes the warnings command.
func (c *WarningsCmd) Run(deps *Dependencies) error {
	filter := blockwright.WarningFilter{IncludeResolved: c.All}
	if c.Document != "" {
		filter.DocumentID = &c.Document
	}

	warnings, err := deps.Warnings.FindWarnings(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blockwright.ErrorMessage(err))
		return err
	}

	if len(warnings) == 0 {
		fmt.Fprintln(deps.Stdout, "No open warnings.")
		return nil
	}

	for _, w := range warnings {
		state := "open"
		if w.ResolvedAt != nil {
			state = "resolved"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  doc=%s  %.2f  %s  %s\n",
			w.ID, w.CreatedAt.Format(time.DateTime), w.DocumentID, w.Confidence, state, w.Message)
	}
	return nil
}

// Run executes the resolve command.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	if err := deps.Warnings.ResolveWarning(deps.Ctx, c.ID); err != nil {
		if blockwright.ErrorCode(err) == blockwright.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: warning %q not found or already resolved. Use 'blockwright warnings' to see open warnings.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", blockwright.ErrorMessage(err))
		}
		return err
	}
	fmt.Fprintf(deps.Stdout, "Resolved warning %s\n", c.ID)
	return nil
}

package mutate

import (
	"fmt"

	"github.com/fwojciec/blockwright"
)

func manualHeading(target blockwright.RenderTarget, change blockwright.HeadingChange) *blockwright.MutationResult {
	replace := "Replace the heading text with the new text below."
	if change.Level > 0 {
		replace = fmt.Sprintf("Replace the heading text with the new text below and set the heading level to H%d.", change.Level)
	}
	return &blockwright.MutationResult{
		Status:  blockwright.MutationManual,
		Target:  target,
		Message: fmt.Sprintf("no automated editor for %s documents; change the heading by hand", targetName(target)),
		Manual: &blockwright.ManualInstructions{
			Steps: []string{
				fmt.Sprintf("Open document %s in the editor.", change.DocumentID),
				"Find the first heading whose text matches the old text below.",
				replace,
				"Save the document and check the published page.",
			},
			OldText: change.OldText,
			NewText: change.NewText,
		},
	}
}

func manualContent(target blockwright.RenderTarget, block blockwright.ContentBlock) *blockwright.MutationResult {
	where := "end"
	if block.Position == blockwright.PositionStart {
		where = "start"
	}
	return &blockwright.MutationResult{
		Status:  blockwright.MutationManual,
		Target:  target,
		Message: fmt.Sprintf("no automated editor for %s documents; add the content by hand", targetName(target)),
		Manual: &blockwright.ManualInstructions{
			Steps: []string{
				fmt.Sprintf("Open document %s in the editor.", block.DocumentID),
				fmt.Sprintf("Add a custom HTML element at the %s of the content.", where),
				"Paste the content below into the element.",
				"Save the document and check the published page.",
			},
			Content: block.HTML,
		},
	}
}

func targetName(target blockwright.RenderTarget) string {
	if target == blockwright.RenderTargetUnknown {
		return "unrecognized"
	}
	return string(target)
}

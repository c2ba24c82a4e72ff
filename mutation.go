package blockwright

import (
	"context"
	"strings"
)

// MutationStatus is the outcome of a mutation request.
type MutationStatus string

// Mutation statuses.
const (
	MutationApplied  MutationStatus = "applied"
	MutationNotFound MutationStatus = "not_found"
	MutationError    MutationStatus = "error"
	MutationManual   MutationStatus = "manual_action"
)

// MutationResult describes what happened to a mutation request. It is always
// returned, even when the request failed.
type MutationResult struct {
	Status  MutationStatus      `json:"status"`
	Target  RenderTarget        `json:"target"`
	Message string              `json:"message"`
	Manual  *ManualInstructions `json:"manual,omitempty"`
}

// ManualInstructions tells a human how to perform a change that could not be
// automated. OldText, NewText and Content are echoed exactly as requested.
type ManualInstructions struct {
	Steps   []string `json:"steps"`
	OldText string   `json:"oldText,omitempty"`
	NewText string   `json:"newText,omitempty"`
	Content string   `json:"content,omitempty"`
}

// HeadingChange requests that the first heading whose text equals OldText be
// rewritten to NewText. Level is optional; zero keeps the current level.
type HeadingChange struct {
	DocumentID string `json:"documentId"`
	OldText    string `json:"oldText"`
	NewText    string `json:"newText"`
	Level      int    `json:"level,omitempty"`
}

// Validate returns an error if the change is malformed.
func (c *HeadingChange) Validate() error {
	if c.DocumentID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	if strings.TrimSpace(c.OldText) == "" {
		return Errorf(EINVALID, "old heading text required")
	}
	if strings.TrimSpace(c.NewText) == "" {
		return Errorf(EINVALID, "new heading text required")
	}
	if c.Level < 0 || c.Level > 6 {
		return Errorf(EINVALID, "heading level must be between 1 and 6")
	}
	return nil
}

// Position selects where appended content is placed.
type Position string

// Content block positions.
const (
	PositionEnd   Position = "end"
	PositionStart Position = "start"
)

// ContentBlock requests that HTML content be added to a document.
type ContentBlock struct {
	DocumentID string   `json:"documentId"`
	HTML       string   `json:"html"`
	WidgetType string   `json:"widgetType,omitempty"`
	Position   Position `json:"position,omitempty"`
}

// Validate returns an error if the block is malformed.
func (b *ContentBlock) Validate() error {
	if b.DocumentID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	if b.HTML == "" {
		return Errorf(EINVALID, "content HTML required")
	}
	switch b.Position {
	case "", PositionEnd, PositionStart:
	default:
		return Errorf(EINVALID, "invalid position %q", b.Position)
	}
	return nil
}

// ContentAdapter computes format-preserving edits for one render target.
// Adapters never touch storage; the caller persists the returned update.
type ContentAdapter interface {
	// Target returns the render target this adapter handles.
	Target() RenderTarget

	// ChangeHeading returns the update that applies change to doc.
	// Returns ENOTFOUND if no heading matches.
	ChangeHeading(doc *Document, change HeadingChange) (*DocumentUpdate, error)

	// AppendContent returns the update that adds block to doc.
	// Returns ENOTFOUND if the document has nowhere to put it.
	AppendContent(doc *Document, block ContentBlock) (*DocumentUpdate, error)

	// InvalidatesCache reports whether writes must be followed by cache
	// invalidation callbacks.
	InvalidatesCache() bool
}

// AdapterRegistry maps render targets to adapters.
type AdapterRegistry interface {
	// Get returns the adapter for target, or nil if none is registered.
	Get(target RenderTarget) ContentAdapter

	// Register adds an adapter, replacing any adapter for the same target.
	Register(adapter ContentAdapter)

	// List returns all targets with a registered adapter.
	List() []RenderTarget
}

// Mutator applies targeted mutations to stored documents.
type Mutator interface {
	ApplyHeadingChange(ctx context.Context, change HeadingChange) *MutationResult
	ApplyContentBlock(ctx context.Context, block ContentBlock) *MutationResult
}

// Package mutate applies targeted edits to stored documents by dispatching
// to the content adapter registered for each document's render target.
package mutate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/blockwright"
	"github.com/fwojciec/blockwright/bluemonday"
)

var _ blockwright.Mutator = (*Engine)(nil)

// Engine implements blockwright.Mutator.
type Engine struct {
	Documents blockwright.DocumentService
	Detector  blockwright.RenderTargetDetector
	Adapters  blockwright.AdapterRegistry

	// Hooks run after a successful write by an adapter whose format is
	// cached. Failures are logged and otherwise ignored.
	Hooks []blockwright.InvalidationHook

	// Logger receives hook failures. Nil discards them.
	Logger *slog.Logger
}

// ApplyHeadingChange rewrites the first heading matching change.OldText.
func (e *Engine) ApplyHeadingChange(ctx context.Context, change blockwright.HeadingChange) *blockwright.MutationResult {
	if err := change.Validate(); err != nil {
		return failure(blockwright.RenderTargetUnknown, err)
	}
	// Markup-only text would otherwise match the first empty heading.
	if bluemonday.Text(change.OldText) == "" {
		return failure(blockwright.RenderTargetUnknown, blockwright.Errorf(blockwright.EINVALID, "old heading text has no visible text"))
	}
	if bluemonday.Text(change.NewText) == "" {
		return failure(blockwright.RenderTargetUnknown, blockwright.Errorf(blockwright.EINVALID, "new heading text has no visible text"))
	}

	target, adapter, res := e.resolve(ctx, change.DocumentID)
	if res != nil {
		return res
	}
	if adapter == nil {
		return manualHeading(target, change)
	}

	return e.apply(ctx, target, adapter, change.DocumentID, func(doc *blockwright.Document) (*blockwright.DocumentUpdate, error) {
		return adapter.ChangeHeading(doc, change)
	}, fmt.Sprintf("heading %q changed to %q", change.OldText, change.NewText))
}

// ApplyContentBlock adds sanitized HTML content to a document.
func (e *Engine) ApplyContentBlock(ctx context.Context, block blockwright.ContentBlock) *blockwright.MutationResult {
	if err := block.Validate(); err != nil {
		return failure(blockwright.RenderTargetUnknown, err)
	}

	target, adapter, res := e.resolve(ctx, block.DocumentID)
	if res != nil {
		return res
	}
	if adapter == nil {
		return manualContent(target, block)
	}

	clean := block
	clean.HTML = bluemonday.Sanitize(block.HTML)
	if strings.TrimSpace(clean.HTML) == "" {
		return failure(target, blockwright.Errorf(blockwright.EINVALID, "content is empty after sanitizing"))
	}
	if clean.Position == "" {
		clean.Position = blockwright.PositionEnd
	}

	return e.apply(ctx, target, adapter, block.DocumentID, func(doc *blockwright.Document) (*blockwright.DocumentUpdate, error) {
		return adapter.AppendContent(doc, clean)
	}, fmt.Sprintf("content added at %s", clean.Position))
}

// resolve detects the document's render target and looks up its adapter.
// A non-nil result means the request has already failed.
func (e *Engine) resolve(ctx context.Context, id string) (blockwright.RenderTarget, blockwright.ContentAdapter, *blockwright.MutationResult) {
	target, err := e.Detector.Detect(ctx, id)
	if err != nil {
		return target, nil, failure(target, err)
	}
	return target, e.Adapters.Get(target), nil
}

func (e *Engine) apply(
	ctx context.Context,
	target blockwright.RenderTarget,
	adapter blockwright.ContentAdapter,
	id string,
	compute func(doc *blockwright.Document) (*blockwright.DocumentUpdate, error),
	applied string,
) *blockwright.MutationResult {
	doc, err := e.Documents.FindDocumentByID(ctx, id)
	if err != nil {
		return failure(target, err)
	}

	upd, err := guard(doc, compute)
	if err != nil {
		return failure(target, err)
	}
	if upd == nil || upd.IsEmpty() || unchanged(doc, upd) {
		return &blockwright.MutationResult{
			Status:  blockwright.MutationNotFound,
			Target:  target,
			Message: "document already contains the requested change",
		}
	}

	if err := e.Documents.SetDocument(ctx, id, *upd); err != nil {
		return &blockwright.MutationResult{
			Status:  blockwright.MutationError,
			Target:  target,
			Message: message(err),
		}
	}

	if adapter.InvalidatesCache() {
		e.invalidate(ctx, id)
	}

	return &blockwright.MutationResult{
		Status:  blockwright.MutationApplied,
		Target:  target,
		Message: applied,
	}
}

// guard runs an adapter computation, converting a panic into an error.
func guard(doc *blockwright.Document, compute func(*blockwright.Document) (*blockwright.DocumentUpdate, error)) (upd *blockwright.DocumentUpdate, err error) {
	defer func() {
		if r := recover(); r != nil {
			upd, err = nil, blockwright.Errorf(blockwright.EINTERNAL, "adapter failed: %v", r)
		}
	}()
	return compute(doc)
}

// invalidate calls every hook in order. A failing or panicking hook never
// affects the mutation result or the hooks after it.
func (e *Engine) invalidate(ctx context.Context, id string) {
	logger := e.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	for i, hook := range e.Hooks {
		runHook(ctx, logger, i, hook, id)
	}
}

func runHook(ctx context.Context, logger *slog.Logger, i int, hook blockwright.InvalidationHook, id string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("invalidation hook panicked", "hook", i, "document", id, "panic", r)
		}
	}()
	if err := hook(ctx, id); err != nil {
		logger.Warn("invalidation hook failed", "hook", i, "document", id, "error", err)
	}
}

func unchanged(doc *blockwright.Document, upd *blockwright.DocumentUpdate) bool {
	if upd.Status != nil && *upd.Status != doc.Status {
		return false
	}
	if upd.Body != nil && *upd.Body != doc.Body {
		return false
	}
	if upd.SideChannel != nil && !bytes.Equal(upd.SideChannel, doc.SideChannel) {
		return false
	}
	return true
}

func failure(target blockwright.RenderTarget, err error) *blockwright.MutationResult {
	status := blockwright.MutationError
	if blockwright.ErrorCode(err) == blockwright.ENOTFOUND {
		status = blockwright.MutationNotFound
	}
	return &blockwright.MutationResult{
		Status:  status,
		Target:  target,
		Message: message(err),
	}
}

// message returns an application error's message or, for any other error,
// its full text unchanged.
func message(err error) string {
	var e *blockwright.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

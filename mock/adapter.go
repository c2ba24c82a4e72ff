package mock

import "github.com/fwojciec/blockwright"

var _ blockwright.ContentAdapter = (*ContentAdapter)(nil)

// ContentAdapter is a mock implementation of blockwright.ContentAdapter.
type ContentAdapter struct {
	TargetFn           func() blockwright.RenderTarget
	ChangeHeadingFn    func(doc *blockwright.Document, change blockwright.HeadingChange) (*blockwright.DocumentUpdate, error)
	AppendContentFn    func(doc *blockwright.Document, block blockwright.ContentBlock) (*blockwright.DocumentUpdate, error)
	InvalidatesCacheFn func() bool
}

func (a *ContentAdapter) Target() blockwright.RenderTarget {
	return a.TargetFn()
}

func (a *ContentAdapter) ChangeHeading(doc *blockwright.Document, change blockwright.HeadingChange) (*blockwright.DocumentUpdate, error) {
	return a.ChangeHeadingFn(doc, change)
}

func (a *ContentAdapter) AppendContent(doc *blockwright.Document, block blockwright.ContentBlock) (*blockwright.DocumentUpdate, error) {
	return a.AppendContentFn(doc, block)
}

func (a *ContentAdapter) InvalidatesCache() bool {
	return a.InvalidatesCacheFn()
}

var _ blockwright.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of blockwright.Renderer.
type Renderer struct {
	TargetFn  func() blockwright.RenderTarget
	RenderFn  func(nodes []*blockwright.ContentNode) (string, error)
	WrapFn    func(rendered string, tag blockwright.ClaimTag) string
	ReceiptFn func(tag blockwright.ClaimTag) string
	ComposeFn func(blocks []string) blockwright.DocumentUpdate
}

func (r *Renderer) Target() blockwright.RenderTarget {
	return r.TargetFn()
}

func (r *Renderer) Render(nodes []*blockwright.ContentNode) (string, error) {
	return r.RenderFn(nodes)
}

func (r *Renderer) Wrap(rendered string, tag blockwright.ClaimTag) string {
	return r.WrapFn(rendered, tag)
}

func (r *Renderer) Receipt(tag blockwright.ClaimTag) string {
	return r.ReceiptFn(tag)
}

func (r *Renderer) Compose(blocks []string) blockwright.DocumentUpdate {
	return r.ComposeFn(blocks)
}

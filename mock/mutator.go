package mock

import (
	"context"

	"github.com/fwojciec/blockwright"
)

var _ blockwright.Mutator = (*Mutator)(nil)

// Mutator is a mock implementation of blockwright.Mutator.
type Mutator struct {
	ApplyHeadingChangeFn func(ctx context.Context, change blockwright.HeadingChange) *blockwright.MutationResult
	ApplyContentBlockFn  func(ctx context.Context, block blockwright.ContentBlock) *blockwright.MutationResult
}

func (m *Mutator) ApplyHeadingChange(ctx context.Context, change blockwright.HeadingChange) *blockwright.MutationResult {
	return m.ApplyHeadingChangeFn(ctx, change)
}

func (m *Mutator) ApplyContentBlock(ctx context.Context, block blockwright.ContentBlock) *blockwright.MutationResult {
	return m.ApplyContentBlockFn(ctx, block)
}

var _ blockwright.Injector = (*Injector)(nil)

// Injector is a mock implementation of blockwright.Injector.
type Injector struct {
	InjectFn func(ctx context.Context, req blockwright.InjectRequest) (*blockwright.InjectResult, error)
}

func (i *Injector) Inject(ctx context.Context, req blockwright.InjectRequest) (*blockwright.InjectResult, error) {
	return i.InjectFn(ctx, req)
}

var _ blockwright.PatternExtractor = (*PatternExtractor)(nil)

// PatternExtractor is a mock implementation of blockwright.PatternExtractor.
type PatternExtractor struct {
	ExtractFAQFn   func(html string) (*blockwright.FAQResult, error)
	ExtractStepsFn func(html string) ([]blockwright.Step, error)
}

func (e *PatternExtractor) ExtractFAQ(html string) (*blockwright.FAQResult, error) {
	return e.ExtractFAQFn(html)
}

func (e *PatternExtractor) ExtractSteps(html string) ([]blockwright.Step, error) {
	return e.ExtractStepsFn(html)
}

var _ blockwright.PageFetcher = (*PageFetcher)(nil)

// PageFetcher is a mock implementation of blockwright.PageFetcher.
type PageFetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *PageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

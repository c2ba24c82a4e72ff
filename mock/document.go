package mock

import (
	"context"

	"github.com/fwojciec/blockwright"
)

var _ blockwright.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of blockwright.DocumentService.
type DocumentService struct {
	CreateDocumentFn   func(ctx context.Context, doc *blockwright.Document) error
	FindDocumentByIDFn func(ctx context.Context, id string) (*blockwright.Document, error)
	FindDocumentsFn    func(ctx context.Context, filter blockwright.DocumentFilter) ([]*blockwright.Document, error)
	SetDocumentFn      func(ctx context.Context, id string, upd blockwright.DocumentUpdate) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *blockwright.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*blockwright.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter blockwright.DocumentFilter) ([]*blockwright.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) SetDocument(ctx context.Context, id string, upd blockwright.DocumentUpdate) error {
	return s.SetDocumentFn(ctx, id, upd)
}

var _ blockwright.RenderTargetDetector = (*RenderTargetDetector)(nil)

// RenderTargetDetector is a mock implementation of blockwright.RenderTargetDetector.
type RenderTargetDetector struct {
	DetectFn func(ctx context.Context, id string) (blockwright.RenderTarget, error)
}

func (d *RenderTargetDetector) Detect(ctx context.Context, id string) (blockwright.RenderTarget, error) {
	return d.DetectFn(ctx, id)
}

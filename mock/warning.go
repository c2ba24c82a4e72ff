package mock

import (
	"context"

	"github.com/fwojciec/blockwright"
)

var _ blockwright.WarningService = (*WarningService)(nil)

// WarningService is a mock implementation of blockwright.WarningService.
type WarningService struct {
	CreateWarningFn  func(ctx context.Context, w *blockwright.Warning) error
	FindWarningsFn   func(ctx context.Context, filter blockwright.WarningFilter) ([]*blockwright.Warning, error)
	ResolveWarningFn func(ctx context.Context, id string) error
}

func (s *WarningService) CreateWarning(ctx context.Context, w *blockwright.Warning) error {
	return s.CreateWarningFn(ctx, w)
}

func (s *WarningService) FindWarnings(ctx context.Context, filter blockwright.WarningFilter) ([]*blockwright.Warning, error) {
	return s.FindWarningsFn(ctx, filter)
}

func (s *WarningService) ResolveWarning(ctx context.Context, id string) error {
	return s.ResolveWarningFn(ctx, id)
}

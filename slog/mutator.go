// Package slog provides logging decorators for blockwright services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/blockwright"
)

// Ensure LoggingMutator implements blockwright.Mutator.
var _ blockwright.Mutator = (*LoggingMutator)(nil)

// LoggingMutator wraps a Mutator and logs every mutation outcome.
type LoggingMutator struct {
	next   blockwright.Mutator
	logger *slog.Logger
}

// NewLoggingMutator creates a new LoggingMutator.
func NewLoggingMutator(next blockwright.Mutator, logger *slog.Logger) *LoggingMutator {
	return &LoggingMutator{next: next, logger: logger}
}

// ApplyHeadingChange delegates to the wrapped mutator and logs the result.
func (m *LoggingMutator) ApplyHeadingChange(ctx context.Context, change blockwright.HeadingChange) (res *blockwright.MutationResult) {
	defer func(begin time.Time) {
		m.log(ctx, "heading change", change.DocumentID, res, time.Since(begin))
	}(time.Now())
	return m.next.ApplyHeadingChange(ctx, change)
}

// ApplyContentBlock delegates to the wrapped mutator and logs the result.
func (m *LoggingMutator) ApplyContentBlock(ctx context.Context, block blockwright.ContentBlock) (res *blockwright.MutationResult) {
	defer func(begin time.Time) {
		m.log(ctx, "content block", block.DocumentID, res, time.Since(begin))
	}(time.Now())
	return m.next.ApplyContentBlock(ctx, block)
}

// log reports error results at warn level; everything else at info.
func (m *LoggingMutator) log(ctx context.Context, op, id string, res *blockwright.MutationResult, d time.Duration) {
	level := slog.LevelInfo
	attrs := []any{"id", id, "duration", d}
	if res != nil {
		attrs = append(attrs, "status", string(res.Status), "target", string(res.Target))
		if res.Status == blockwright.MutationError {
			level = slog.LevelWarn
			attrs = append(attrs, "err", res.Message)
		}
	}
	m.logger.Log(ctx, level, op, attrs...)
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/blockwright"
)

// Ensure LoggingInjector implements blockwright.Injector.
var _ blockwright.Injector = (*LoggingInjector)(nil)

// LoggingInjector wraps an Injector with logging.
type LoggingInjector struct {
	next   blockwright.Injector
	logger *slog.Logger
}

// NewLoggingInjector creates a new LoggingInjector.
func NewLoggingInjector(next blockwright.Injector, logger *slog.Logger) *LoggingInjector {
	return &LoggingInjector{next: next, logger: logger}
}

// Inject delegates to the wrapped injector and logs the job outcome.
func (i *LoggingInjector) Inject(ctx context.Context, req blockwright.InjectRequest) (res *blockwright.InjectResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"id", req.DocumentID,
			"template", string(req.Template),
			"duration", time.Since(begin),
		}
		if res != nil {
			attrs = append(attrs,
				"job", res.JobID,
				"state", string(res.State),
				"confidence", res.Confidence,
				"blocks", res.BlockCount,
				"warnings", len(res.Warnings),
			)
		}
		attrs = append(attrs, "err", err)
		i.logger.Info("inject", attrs...)
	}(time.Now())
	return i.next.Inject(ctx, req)
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/blockwright"
)

// Ensure LoggingDocumentService implements blockwright.DocumentService.
var _ blockwright.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService with debug logging of
// writes. Reads are delegated without logging.
type LoggingDocumentService struct {
	next   blockwright.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next blockwright.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

// CreateDocument delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) CreateDocument(ctx context.Context, doc *blockwright.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create document",
			"id", doc.ID,
			"target", string(doc.Target),
			"status", string(doc.Status),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateDocument(ctx, doc)
}

// FindDocumentByID delegates to the wrapped service.
func (s *LoggingDocumentService) FindDocumentByID(ctx context.Context, id string) (*blockwright.Document, error) {
	return s.next.FindDocumentByID(ctx, id)
}

// FindDocuments delegates to the wrapped service.
func (s *LoggingDocumentService) FindDocuments(ctx context.Context, filter blockwright.DocumentFilter) ([]*blockwright.Document, error) {
	return s.next.FindDocuments(ctx, filter)
}

// SetDocument delegates to the wrapped service and logs which fields were
// written.
func (s *LoggingDocumentService) SetDocument(ctx context.Context, id string, upd blockwright.DocumentUpdate) (err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"id", id,
			"body", upd.Body != nil,
			"sideChannel", upd.SideChannel != nil,
		}
		if upd.Status != nil {
			attrs = append(attrs, "status", string(*upd.Status))
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		s.logger.Debug("set document", attrs...)
	}(time.Now())
	return s.next.SetDocument(ctx, id, upd)
}

package blockwright

import (
	"context"
	"time"
)

// Warning records that a document was forced to draft. It stays open until a
// human resolves it.
type Warning struct {
	ID         string     `json:"id"`
	DocumentID string     `json:"documentId"`
	JobID      string     `json:"jobId"`
	Confidence float64    `json:"confidence"`
	Message    string     `json:"message"`
	CreatedAt  time.Time  `json:"createdAt"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
}

// Validate returns an error if the warning contains invalid fields.
func (w *Warning) Validate() error {
	if w.DocumentID == "" {
		return Errorf(EINVALID, "warning document ID required")
	}
	if w.Message == "" {
		return Errorf(EINVALID, "warning message required")
	}
	if w.Confidence < 0 || w.Confidence > 1 {
		return Errorf(EINVALID, "warning confidence must be between 0 and 1")
	}
	return nil
}

// WarningFilter represents a filter for FindWarnings.
type WarningFilter struct {
	DocumentID *string `json:"documentId"`

	// IncludeResolved also returns warnings that were already resolved.
	IncludeResolved bool `json:"includeResolved"`
}

// WarningService persists low-confidence warnings.
type WarningService interface {
	// CreateWarning stores a new warning, assigning its ID and CreatedAt.
	CreateWarning(ctx context.Context, w *Warning) error

	// FindWarnings retrieves warnings matching the filter, newest first.
	FindWarnings(ctx context.Context, filter WarningFilter) ([]*Warning, error)

	// ResolveWarning marks a warning as handled by a human.
	// Returns ENOTFOUND if the warning does not exist or is already resolved.
	ResolveWarning(ctx context.Context, id string) error
}

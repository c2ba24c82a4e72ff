package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/blockwright"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ blockwright.WarningService = (*WarningService)(nil)

// WarningService implements blockwright.WarningService using SQLite.
type WarningService struct {
	db *DB
}

// NewWarningService creates a new WarningService.
func NewWarningService(db *DB) *WarningService {
	return &WarningService{db: db}
}

// CreateWarning stores a warning with a generated ID and timestamp.
func (s *WarningService) CreateWarning(ctx context.Context, w *blockwright.Warning) error {
	if err := w.Validate(); err != nil {
		return err
	}

	w.ID = uuid.New().String()
	w.CreatedAt = time.Now().UTC()
	w.ResolvedAt = nil

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO warnings (id, document_id, job_id, confidence, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, w.ID, w.DocumentID, w.JobID, w.Confidence, w.Message, w.CreatedAt.Format(timeFormat))
	var serr *sqlite3.Error
	if errors.As(err, &serr) && serr.ExtendedCode() == sqlite3.CONSTRAINT_FOREIGNKEY {
		return blockwright.Errorf(blockwright.ENOTFOUND, "document %s not found", w.DocumentID)
	}
	return err
}

// FindWarnings retrieves warnings matching the filter, newest first.
func (s *WarningService) FindWarnings(ctx context.Context, filter blockwright.WarningFilter) ([]*blockwright.Warning, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, document_id, job_id, confidence, message, created_at, resolved_at FROM warnings WHERE 1=1")

	if filter.DocumentID != nil {
		query.WriteString(" AND document_id = ?")
		args = append(args, *filter.DocumentID)
	}
	if !filter.IncludeResolved {
		query.WriteString(" AND resolved_at IS NULL")
	}
	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var warnings []*blockwright.Warning
	for rows.Next() {
		var w blockwright.Warning
		var createdAt string
		var resolvedAt sql.NullString
		if err := rows.Scan(&w.ID, &w.DocumentID, &w.JobID, &w.Confidence, &w.Message, &createdAt, &resolvedAt); err != nil {
			return nil, err
		}
		if w.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if resolvedAt.Valid {
			t, err := parseTime(resolvedAt.String, "resolved_at")
			if err != nil {
				return nil, err
			}
			w.ResolvedAt = &t
		}
		warnings = append(warnings, &w)
	}

	return warnings, rows.Err()
}

// ResolveWarning marks an open warning as resolved.
func (s *WarningService) ResolveWarning(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE warnings SET resolved_at = ? WHERE id = ? AND resolved_at IS NULL",
		time.Now().UTC().Format(timeFormat), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return blockwright.Errorf(blockwright.ENOTFOUND, "open warning %s not found", id)
	}
	return nil
}

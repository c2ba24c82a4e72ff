package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/blockwright"
)

// Compile-time interface verification.
var (
	_ blockwright.DocumentService      = (*DocumentService)(nil)
	_ blockwright.RenderTargetDetector = (*Detector)(nil)
)

// DocumentService implements blockwright.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

const documentColumns = "id, title, body, side_channel, status, target, content_hash, updated_at"

// CreateDocument stores a new document under its own ID.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *blockwright.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.UpdatedAt = time.Now().UTC()
	doc.ContentHash = hashContent(doc.Body, doc.SideChannel)

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, doc.ID, doc.Title, doc.Body, doc.SideChannel, string(doc.Status), string(doc.Target), doc.ContentHash,
		doc.UpdatedAt.Format(timeFormat))
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return blockwright.Errorf(blockwright.ECONFLICT, "document %s already exists", doc.ID)
	}
	return nil
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*blockwright.Document, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+documentColumns+" FROM documents WHERE id = ?", id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blockwright.Errorf(blockwright.ENOTFOUND, "document %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter ordered by ID.
func (s *DocumentService) FindDocuments(ctx context.Context, filter blockwright.DocumentFilter) ([]*blockwright.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.Target != nil {
		query.WriteString(" AND target = ?")
		args = append(args, string(*filter.Target))
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*blockwright.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// SetDocument writes the update over the stored document in one statement.
func (s *DocumentService) SetDocument(ctx context.Context, id string, upd blockwright.DocumentUpdate) error {
	doc, err := s.FindDocumentByID(ctx, id)
	if err != nil {
		return err
	}

	if upd.Body != nil {
		doc.Body = *upd.Body
	}
	if upd.SideChannel != nil {
		doc.SideChannel = upd.SideChannel
	}
	if upd.Status != nil {
		doc.Status = *upd.Status
	}

	// Validate before persisting (defense-in-depth)
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ContentHash = hashContent(doc.Body, doc.SideChannel)
	doc.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE documents
		SET body = ?, side_channel = ?, status = ?, content_hash = ?, updated_at = ?
		WHERE id = ?
	`, doc.Body, doc.SideChannel, string(doc.Status), doc.ContentHash, doc.UpdatedAt.Format(timeFormat), id)
	return err
}

// Detector reports the render target recorded for each document.
type Detector struct {
	db *DB
}

// NewDetector creates a new Detector.
func NewDetector(db *DB) *Detector {
	return &Detector{db: db}
}

// Detect returns the stored render target of a document.
func (d *Detector) Detect(ctx context.Context, id string) (blockwright.RenderTarget, error) {
	var target string
	err := d.db.QueryRowContext(ctx, "SELECT target FROM documents WHERE id = ?", id).Scan(&target)
	if errors.Is(err, sql.ErrNoRows) {
		return blockwright.RenderTargetUnknown, blockwright.Errorf(blockwright.ENOTFOUND, "document %s not found", id)
	}
	if err != nil {
		return blockwright.RenderTargetUnknown, err
	}
	return blockwright.RenderTarget(target), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*blockwright.Document, error) {
	var doc blockwright.Document
	var status, target, updatedAt string
	if err := row.Scan(&doc.ID, &doc.Title, &doc.Body, &doc.SideChannel, &status, &target,
		&doc.ContentHash, &updatedAt); err != nil {
		return nil, err
	}
	doc.Status = blockwright.DocumentStatus(status)
	doc.Target = blockwright.RenderTarget(target)

	var err error
	if doc.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &doc, nil
}

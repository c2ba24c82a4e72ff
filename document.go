package blockwright

import (
	"context"
	"time"
)

// RenderTarget selects the serialization family a document is stored in.
type RenderTarget string

// Supported render targets.
const (
	RenderTargetUnknown   RenderTarget = ""
	RenderTargetBlocks    RenderTarget = "gutenberg" // comment-delimited block tree
	RenderTargetWidgets   RenderTarget = "elementor" // JSON widget tree in the side channel
	RenderTargetShortcode RenderTarget = "divi"      // shortcode-embedded body string
	RenderTargetHTML      RenderTarget = "html"      // plain markup
)

// ParseRenderTarget returns the render target with the given name.
func ParseRenderTarget(s string) (RenderTarget, error) {
	switch t := RenderTarget(s); t {
	case RenderTargetBlocks, RenderTargetWidgets, RenderTargetShortcode, RenderTargetHTML:
		return t, nil
	}
	return RenderTargetUnknown, Errorf(EINVALID, "unknown render target %q", s)
}

// DocumentStatus is the publication status of a document.
type DocumentStatus string

// Document statuses.
const (
	StatusPublish DocumentStatus = "publish"
	StatusDraft   DocumentStatus = "draft"
)

// Document is a stored CMS document.
type Document struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Body        string         `json:"body"`
	SideChannel []byte         `json:"sideChannel,omitempty"`
	Status      DocumentStatus `json:"status"`
	Target      RenderTarget   `json:"target"`
	ContentHash string         `json:"contentHash"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	switch d.Status {
	case StatusPublish, StatusDraft:
	default:
		return Errorf(EINVALID, "invalid document status %q", d.Status)
	}
	return nil
}

// DocumentUpdate represents fields written back to a document. Nil fields are
// left unchanged.
type DocumentUpdate struct {
	Body        *string         `json:"body"`
	SideChannel []byte          `json:"sideChannel"`
	Status      *DocumentStatus `json:"status"`
}

// IsEmpty reports whether the update would change nothing.
func (u *DocumentUpdate) IsEmpty() bool {
	return u.Body == nil && u.SideChannel == nil && u.Status == nil
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	Target *RenderTarget   `json:"target"`
	Status *DocumentStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DocumentService is the content repository.
type DocumentService interface {
	// CreateDocument stores a new document. An existing document with the
	// same ID returns ECONFLICT.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if the document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// SetDocument writes the whole document in a single operation. There is
	// no concurrency control: concurrent writers resolve last-write-wins.
	// Returns ENOTFOUND if the document does not exist.
	SetDocument(ctx context.Context, id string, upd DocumentUpdate) error
}

// RenderTargetDetector reports the render target of a document. Its answer
// is trusted and never recomputed.
type RenderTargetDetector interface {
	Detect(ctx context.Context, id string) (RenderTarget, error)
}

// InvalidationHook is a best-effort callback fired after a document's
// rendered cache becomes stale. Errors are logged by the caller and never
// propagated.
type InvalidationHook func(ctx context.Context, id string) error

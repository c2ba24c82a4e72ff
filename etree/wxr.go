// Package etree imports documents from WordPress eXtended RSS (WXR) exports.
package etree

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/blockwright"
)

// Post meta keys that identify page builder content.
const (
	metaElementorData = "_elementor_data"
	metaDiviBuilder   = "_et_pb_use_builder"
)

// importedTypes lists the post types carrying page content. Attachments,
// menu items and revisions are skipped.
var importedTypes = map[string]bool{
	"post": true,
	"page": true,
}

// Read parses a WXR export and returns one document per post or page item.
// The render target of each document is inferred from its content.
func Read(r io.Reader) ([]*blockwright.Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, blockwright.Errorf(blockwright.EINVALID, "invalid WXR export: %v", err)
	}

	channel := doc.FindElement("/rss/channel")
	if channel == nil {
		return nil, blockwright.Errorf(blockwright.EINVALID, "invalid WXR export: missing rss channel")
	}

	var docs []*blockwright.Document
	for _, item := range channel.SelectElements("item") {
		postType := text(item, "wp:post_type")
		if postType != "" && !importedTypes[postType] {
			continue
		}
		d, err := readItem(item)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}

func readItem(item *etree.Element) (*blockwright.Document, error) {
	id := text(item, "wp:post_id")
	if id == "" {
		return nil, blockwright.Errorf(blockwright.EINVALID, "item %q: missing wp:post_id", text(item, "title"))
	}

	meta := make(map[string]string)
	for _, pm := range item.SelectElements("wp:postmeta") {
		if key := text(pm, "wp:meta_key"); key != "" {
			meta[key] = raw(pm, "wp:meta_value")
		}
	}

	d := &blockwright.Document{
		ID:     id,
		Title:  text(item, "title"),
		Body:   raw(item, "content:encoded"),
		Status: blockwright.StatusDraft,
	}
	if text(item, "wp:status") == string(blockwright.StatusPublish) {
		d.Status = blockwright.StatusPublish
	}
	if data := strings.TrimSpace(meta[metaElementorData]); data != "" {
		d.SideChannel = []byte(data)
	}
	d.Target = InferTarget(d.Body, meta)
	return d, nil
}

// InferTarget picks the render target for a post body and its meta.
// Elementor data wins over everything else, then the Divi builder flag or
// shortcodes, then block comments. Anything else is plain HTML.
func InferTarget(body string, meta map[string]string) blockwright.RenderTarget {
	switch {
	case strings.TrimSpace(meta[metaElementorData]) != "":
		return blockwright.RenderTargetWidgets
	case meta[metaDiviBuilder] == "on", strings.Contains(body, "[et_pb_"):
		return blockwright.RenderTargetShortcode
	case strings.Contains(body, "<!-- wp:"):
		return blockwright.RenderTargetBlocks
	default:
		return blockwright.RenderTargetHTML
	}
}

// Importer loads WXR exports into a document store.
type Importer struct {
	Documents blockwright.DocumentService

	// Target, when set, overrides the inferred render target of every
	// imported document.
	Target blockwright.RenderTarget
}

// NewImporter creates a new Importer.
func NewImporter(docs blockwright.DocumentService) *Importer {
	return &Importer{Documents: docs}
}

// ImportResult summarizes an import.
type ImportResult struct {
	Imported []string `json:"imported"`
	// Existing lists IDs already present in the store. They are left
	// untouched.
	Existing []string `json:"existing"`
}

// Import reads a WXR export from r and creates its documents.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	docs, err := Read(r)
	if err != nil {
		return nil, err
	}

	res := &ImportResult{}
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if im.Target != blockwright.RenderTargetUnknown {
			d.Target = im.Target
		}
		err := im.Documents.CreateDocument(ctx, d)
		switch {
		case err == nil:
			res.Imported = append(res.Imported, d.ID)
		case blockwright.ErrorCode(err) == blockwright.ECONFLICT:
			res.Existing = append(res.Existing, d.ID)
		default:
			return res, fmt.Errorf("import document %s: %w", d.ID, err)
		}
	}
	return res, nil
}

// text returns the trimmed text of the named child, or "".
func text(el *etree.Element, tag string) string {
	return strings.TrimSpace(raw(el, tag))
}

// raw returns the untrimmed text of the named child, or "".
func raw(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return child.Text()
}

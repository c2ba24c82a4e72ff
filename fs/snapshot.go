// Package fs writes document snapshots to the local filesystem.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/blockwright"
	"gopkg.in/yaml.v3"
)

// unsafeName matches characters not allowed in snapshot file names.
var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Snapshot writes documents to a directory with atomic replace semantics.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit,
// so a previous snapshot stays intact until the new one is complete.
type Snapshot struct {
	baseDir string
	name    string
}

// NewSnapshot creates a new Snapshot.
func NewSnapshot(baseDir, name string) *Snapshot {
	return &Snapshot{baseDir: baseDir, name: name}
}

func (s *Snapshot) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *Snapshot) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Dir returns the directory the snapshot is committed to.
func (s *Snapshot) Dir() string {
	return s.finalDir()
}

// Save writes doc into the pending snapshot. It is safe to call concurrently
// for different documents. The body goes to <id>.html with
// a YAML front matter header. A widget tree is written next to it as
// <id>.elementor.json.
func (s *Snapshot) Save(ctx context.Context, doc *blockwright.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := FileName(doc.ID)
	if name == "" {
		return blockwright.Errorf(blockwright.EINVALID, "document ID required")
	}

	dir := s.tempDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	content, err := FormatDocument(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, name+".html"), []byte(content), 0644); err != nil {
		return err
	}
	if len(doc.SideChannel) > 0 {
		return os.WriteFile(filepath.Join(dir, name+".elementor.json"), doc.SideChannel, 0644)
	}
	return nil
}

// Commit replaces the committed snapshot with the pending one.
func (s *Snapshot) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the pending snapshot.
func (s *Snapshot) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// frontMatter is the header written above each document body.
type frontMatter struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Status      string `yaml:"status"`
	Target      string `yaml:"target"`
	ContentHash string `yaml:"content_hash,omitempty"`
	Updated     string `yaml:"updated,omitempty"`
}

// FormatDocument formats a document body with YAML front matter.
func FormatDocument(doc *blockwright.Document) (string, error) {
	fm := frontMatter{
		ID:          doc.ID,
		Title:       doc.Title,
		Status:      string(doc.Status),
		Target:      string(doc.Target),
		ContentHash: doc.ContentHash,
	}
	if !doc.UpdatedAt.IsZero() {
		fm.Updated = doc.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z")
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshal front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(doc.Body)
	return b.String(), nil
}

// FileName converts a document ID to a file name without extension. IDs that
// had to be rewritten get a hash suffix so that "a/b" and "a_b" stay apart.
// Example: "pages/42" → "pages_42-1a2b3c4d"
func FileName(id string) string {
	name := unsafeName.ReplaceAllString(strings.TrimSpace(id), "_")
	name = strings.Trim(name, ".")
	if name == "" || name == id {
		return name
	}
	return fmt.Sprintf("%s-%08x", name, uint32(xxhash.Sum64String(id)))
}

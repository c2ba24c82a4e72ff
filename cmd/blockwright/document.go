package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/blockwright"
	"github.com/fwojciec/blockwright/etree"
	"github.com/fwojciec/blockwright/fs"
	"golang.org/x/sync/errgroup"
)

// exportConcurrency bounds how many documents are written at once.
const exportConcurrency = 4

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	im := etree.NewImporter(deps.Documents)
	if c.Target != "" {
		target, err := blockwright.ParseRenderTarget(c.Target)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", blockwright.ErrorMessage(err))
			return err
		}
		im.Target = target
	}

	f, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := im.Import(deps.Ctx, f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blockwright.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d documents\n", len(res.Imported))
	if len(res.Existing) > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d existing documents\n", len(res.Existing))
	}
	return nil
}

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	var filter blockwright.DocumentFilter
	if c.Target != "" {
		target, err := blockwright.ParseRenderTarget(c.Target)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", blockwright.ErrorMessage(err))
			return err
		}
		filter.Target = &target
	}
	if c.Status != "" {
		status := blockwright.DocumentStatus(c.Status)
		filter.Status = &status
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blockwright.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'blockwright import' to load some.")
		return nil
	}

	for _, d := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", d.ID, d.Target, d.Status, d.Title)
	}
	return nil
}

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, blockwright.DocumentFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blockwright.ErrorMessage(err))
		return err
	}

	dir := filepath.Clean(c.Dir)
	snap := fs.NewSnapshot(filepath.Dir(dir), filepath.Base(dir))
	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(exportConcurrency)
	for _, d := range docs {
		g.Go(func() error {
			return snap.Save(ctx, d)
		})
	}
	if err := g.Wait(); err != nil {
		_ = snap.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", blockwright.ErrorMessage(err))
		return err
	}
	if err := snap.Commit(); err != nil {
		_ = snap.Abort()
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d documents to %s\n", len(docs), snap.Dir())
	return nil
}

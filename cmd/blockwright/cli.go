package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/blockwright"
	"github.com/fwojciec/blockwright/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    Config
	Documents blockwright.DocumentService
	Warnings  blockwright.WarningService
	Mutator   blockwright.Mutator
	Injector  blockwright.Injector
	Extractor blockwright.PatternExtractor
	Fetcher   blockwright.PageFetcher
	Host      *yaml.Host
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log service calls to stderr"`

	Import      ImportCmd      `cmd:"" help:"Import documents from a WordPress WXR export"`
	List        ListCmd        `cmd:"" help:"List stored documents"`
	Export      ExportCmd      `cmd:"" help:"Write a snapshot of all documents to a directory"`
	Heading     HeadingCmd     `cmd:"" help:"Change the text of a heading"`
	Append      AppendCmd      `cmd:"" help:"Add an HTML block to a document"`
	Inject      InjectCmd      `cmd:"" help:"Render a section template into a document"`
	Fingerprint FingerprintCmd `cmd:"" help:"Show the design tokens of the host theme"`
	Components  ComponentsCmd  `cmd:"" help:"Show the content primitives the host can render"`
	FAQ         FAQCmd         `cmd:"" name:"faq" help:"Extract question and answer pairs from HTML"`
	Steps       StepsCmd       `cmd:"" help:"Extract how-to steps from HTML"`
	Warnings    WarningsCmd    `cmd:"" help:"List low-confidence warnings"`
	Resolve     ResolveCmd     `cmd:"" help:"Mark a warning as resolved"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Path   string `arg:"" type:"existingfile" help:"WXR export file"`
	Target string `help:"Override the inferred render target (gutenberg, elementor, divi, html)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Target string `help:"Only show documents with this render target"`
	Status string `help:"Only show documents with this status"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir string `arg:"" help:"Snapshot directory; replaced atomically when the export completes"`
}

// HeadingCmd is the "heading" subcommand.
type HeadingCmd struct {
	ID    string `arg:"" help:"Document ID"`
	Old   string `arg:"" help:"Current heading text"`
	New   string `arg:"" help:"Replacement heading text"`
	Level int    `short:"l" help:"Heading level (1-6) to use for the new heading"`
}

// AppendCmd is the "append" subcommand.
type AppendCmd struct {
	ID       string `arg:"" help:"Document ID"`
	Path     string `arg:"" type:"existingfile" help:"HTML file with the content to add"`
	Widget   string `short:"w" help:"Widget or module type for builder targets"`
	Position string `short:"p" enum:"start,end" default:"end" help:"Where to place the content (start, end)"`
}

// InjectCmd is the "inject" subcommand.
type InjectCmd struct {
	ID       string `arg:"" help:"Document ID"`
	Data     string `arg:"" type:"existingfile" help:"JSON file with the template content"`
	Template string `short:"t" required:"" help:"Template (local-service, article, project-showcase, generic)"`
	Frozen   bool   `help:"Write receipts only; content stays hidden until unfrozen"`
}

// FingerprintCmd is the "fingerprint" subcommand.
type FingerprintCmd struct{}

// ComponentsCmd is the "components" subcommand.
type ComponentsCmd struct{}

// FAQCmd is the "faq" subcommand.
type FAQCmd struct {
	Source string `arg:"" help:"HTML file or page URL"`
	Force  bool   `help:"Extract even when the page shows no service signals"`
}

// StepsCmd is the "steps" subcommand.
type StepsCmd struct {
	Source string `arg:"" help:"HTML file or page URL"`
	Force  bool   `help:"Extract even when the page shows no how-to signals"`
}

// WarningsCmd is the "warnings" subcommand.
type WarningsCmd struct {
	All      bool   `short:"a" help:"Include resolved warnings"`
	Document string `short:"d" help:"Only show warnings for this document"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	ID string `arg:"" help:"Warning ID"`
}

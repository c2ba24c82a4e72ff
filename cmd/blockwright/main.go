package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/blockwright"
	"github.com/fwojciec/blockwright/classic"
	"github.com/fwojciec/blockwright/divi"
	"github.com/fwojciec/blockwright/elementor"
	"github.com/fwojciec/blockwright/goquery"
	"github.com/fwojciec/blockwright/gutenberg"
	bwhttp "github.com/fwojciec/blockwright/http"
	"github.com/fwojciec/blockwright/inject"
	"github.com/fwojciec/blockwright/mutate"
	bwslog "github.com/fwojciec/blockwright/slog"
	"github.com/fwojciec/blockwright/sqlite"
	"github.com/fwojciec/blockwright/yaml"
)

func main() {
	ctx := context.Background()

	cfg, err := LoadConfig(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	m := NewMain(cfg)

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	Config Config

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main.
func NewMain(cfg Config) *Main {
	return &Main{Config: cfg}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Config: m.Config,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("blockwright"),
		kong.Description("Edit and inject content in page builder documents."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'blockwright --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	host, err := m.loadHost()
	if err != nil {
		fmt.Fprintln(stderr, "Hint: BLOCKWRIGHT_HOST must point to a YAML or JSON host file")
		return err
	}
	deps.Host = host

	m.DB = sqlite.NewDB(m.Config.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set BLOCKWRIGHT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.Config.DBPath, err)
	}
	defer m.Close()

	documents := bwslog.NewLoggingDocumentService(sqlite.NewDocumentService(m.DB), deps.Logger)
	detector := sqlite.NewDetector(m.DB)
	deps.Documents = documents
	deps.Warnings = sqlite.NewWarningService(m.DB)

	engine := &mutate.Engine{
		Documents: documents,
		Detector:  detector,
		Adapters:  mutate.NewRegistry(gutenberg.NewAdapter(), elementor.NewAdapter(), divi.NewAdapter()),
		Hooks:     []blockwright.InvalidationHook{logInvalidation(deps.Logger)},
		Logger:    deps.Logger,
	}
	deps.Mutator = bwslog.NewLoggingMutator(engine, deps.Logger)

	injector := inject.NewInjector(documents, detector, deps.Warnings,
		gutenberg.NewRenderer(),
		elementor.NewRenderer(),
		divi.NewRenderer(),
		classic.NewRenderer(),
	)
	injector.GovernanceVersion = m.Config.GovernanceVersion
	injector.Threshold = m.Config.PublishThreshold
	deps.Injector = bwslog.NewLoggingInjector(injector, deps.Logger)

	deps.Extractor = goquery.NewExtractor()
	deps.Fetcher = bwhttp.NewFetcher()

	return kongCtx.Run(deps)
}

// loadHost reads the configured host file. Without one the host is bare:
// no theme config and only core primitives.
func (m *Main) loadHost() (*yaml.Host, error) {
	if m.Config.HostPath == "" {
		return yaml.Parse(nil)
	}
	return yaml.LoadFile(m.Config.HostPath)
}

// logInvalidation reports stale rendered caches. The CLI has no cache to
// purge, so the host is expected to regenerate on the next page view.
func logInvalidation(logger *slog.Logger) blockwright.InvalidationHook {
	return func(ctx context.Context, id string) error {
		logger.InfoContext(ctx, "rendered cache invalidated", "id", id)
		return nil
	}
}

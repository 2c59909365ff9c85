package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/etree"
	"github.com/fwojciec/docsearch/fs"
	"github.com/fwojciec/docsearch/gemini"
	"github.com/fwojciec/docsearch/goquery"
	"github.com/fwojciec/docsearch/htmltomarkdown"
	"github.com/fwojciec/docsearch/ingest"
	"github.com/fwojciec/docsearch/pdf"
	"github.com/fwojciec/docsearch/readability"
	dsslog "github.com/fwojciec/docsearch/slog"
	"github.com/fwojciec/docsearch/sqlite"
	"github.com/fwojciec/docsearch/trafilatura"
	"github.com/fwojciec/docsearch/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Directory holding uploaded files and the URL it is served from.
	StorageDir string
	PublicURL  string

	// Optional YAML taxonomy file replacing the built-in taxonomy.
	TaxonomyPath string

	// Gemini connection settings. APIKey is required by commands that
	// categorize.
	Gemini gemini.Config

	// Optional overrides for end-to-end testing.
	HTTPClient   *http.Client
	TokenCounter docsearch.TokenCounter

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main configured from the environment.
func NewMain() *Main {
	cfg := gemini.DefaultConfig()
	cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.Model = model
	}
	if baseURL := os.Getenv("GEMINI_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Main{
		DBPath:       envOr("DOCSEARCH_DB", filepath.Join(dataDir(), "docsearch.db")),
		StorageDir:   envOr("DOCSEARCH_STORAGE", filepath.Join(dataDir(), "files")),
		PublicURL:    os.Getenv("DOCSEARCH_PUBLIC_URL"),
		TaxonomyPath: os.Getenv("DOCSEARCH_TAXONOMY"),
		Gemini:       cfg,
	}
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
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsearch"),
		kong.Description("Upload, categorize and search documents."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docsearch --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = slog.New(slog.DiscardHandler)
	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	deps.Taxonomy = docsearch.DefaultTaxonomy()
	if m.TaxonomyPath != "" {
		tax, err := yaml.LoadTaxonomy(m.TaxonomyPath)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: DOCSEARCH_TAXONOMY points to %s\n", m.TaxonomyPath)
			return fmt.Errorf("failed to load taxonomy: %w", err)
		}
		deps.Taxonomy = tax
	}

	deps.Extractor = &ingest.FileExtractor{
		HTML: []docsearch.Extractor{
			trafilatura.NewExtractor(),
			readability.NewExtractor(),
			goquery.NewExtractor(),
		},
		Converter: htmltomarkdown.NewConverter(),
		Docx:      etree.NewDocxExtractor(),
		PDF:       pdf.NewExtractor(),
	}

	if cmd == "add" || cmd == "categorize" {
		strict := (cmd == "add" && cli.Add.Strict) || (cmd == "categorize" && cli.Categorize.Strict)
		categorizer, err := m.newCategorizer(deps, strict, stderr)
		if err != nil {
			return err
		}
		deps.Categorizer = categorizer
	}

	// Commands below need the index.
	if cmd == "taxonomy" || cmd == "categorize" {
		return kongCtx.Run(deps)
	}

	if m.DBPath != ":memory:" {
		_ = os.MkdirAll(filepath.Dir(m.DBPath), 0755)
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCSEARCH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.Documents = dsslog.NewLoggingDocumentService(sqlite.NewDocumentService(m.DB), deps.Logger)
	deps.Search = dsslog.NewLoggingSearchService(sqlite.NewSearchService(m.DB), deps.Logger)
	deps.Storage = dsslog.NewLoggingFileStorage(fs.NewStorage(m.StorageDir, m.PublicURL), deps.Logger)

	switch cmd {
	case "add":
		tokenCounter := m.TokenCounter
		if tokenCounter == nil {
			tc, err := gemini.NewTokenCounter(gemini.TokenizerModel)
			if err != nil {
				return fmt.Errorf("failed to create token counter: %w", err)
			}
			tokenCounter = tc
		}

		deps.Ingester = &ingest.Ingester{
			Extractor:      deps.Extractor,
			Categorizer:    deps.Categorizer,
			Storage:        deps.Storage,
			Documents:      deps.Documents,
			TokenCounter:   tokenCounter,
			RateLimiter:    ingest.NewLimiter(cli.Add.Rate, 1),
			Concurrency:    cli.Add.Concurrency,
			SkipDuplicates: cli.Add.SkipDuplicates,
		}
	case "export":
		deps.Writer = fs.NewWriter(cli.Export.Dir)
	}

	return kongCtx.Run(deps)
}

// newCategorizer builds the Gemini categorizer for the loaded taxonomy.
func (m *Main) newCategorizer(deps *Dependencies, strict bool, stderr io.Writer) (docsearch.Categorizer, error) {
	cfg := m.Gemini
	cfg.Taxonomy = deps.Taxonomy
	if strict {
		cfg.Policy = docsearch.PolicyStrict
	}

	if cfg.APIKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gemini configuration: %w", err)
	}

	opts := []gemini.Option{gemini.WithLogger(deps.Logger)}
	if m.HTTPClient != nil {
		opts = append(opts, gemini.WithHTTPClient(m.HTTPClient))
	}
	return dsslog.NewLoggingCategorizer(gemini.NewCategorizer(cfg, opts...), deps.Logger), nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// dataDir returns the directory holding the default database and files.
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docsearch"
	}
	return filepath.Join(home, ".docsearch")
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/errscrape"
	"github.com/fwojciec/errscrape/excelize"
	"github.com/fwojciec/errscrape/fs"
	"github.com/fwojciec/errscrape/goquery"
	"github.com/fwojciec/errscrape/htmlquery"
	errhttp "github.com/fwojciec/errscrape/http"
	"github.com/fwojciec/errscrape/rod"
	"github.com/fwojciec/errscrape/scrape"
	errslog "github.com/fwojciec/errscrape/slog"
	"github.com/fwojciec/errscrape/sqlite"
	"github.com/fwojciec/errscrape/toml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// SQLite database opened for --format=sqlite.
	DB *sqlite.DB

	// Fetcher overrides the HTTP and browser fetchers for end-to-end testing.
	Fetcher errscrape.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("errscrape"),
		kong.Description("Scrape ad-platform API error code catalogues into flat files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.DefaultEnvars("ERRSCRAPE"),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: newLogger(stderr, cli.Verbose),
	}

	deps.Providers = errscrape.DefaultProviders()
	if cli.Config != "" {
		if deps.Providers, err = toml.Load(cli.Config, deps.Providers); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	if cli.List {
		return (&ListCmd{}).Run(deps)
	}

	if cli.SearchEngine == "" {
		return fmt.Errorf("search engine is required (-s)")
	}
	if cli.FileName == "" {
		return fmt.Errorf("file name is required (-f)")
	}

	fetcher, err := m.fetcher(cli, stderr)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	sink, err := m.sink(ctx, cli, errscrape.ProviderID(cli.SearchEngine))
	if err != nil {
		return err
	}
	defer m.Close()
	defer sink.Close()

	opts := scrape.Options{
		Fetcher:     errslog.NewLoggingFetcher(fetcher, deps.Logger),
		Parser:      errslog.NewLoggingParser(newParser(cli.Engine), deps.Logger),
		RateLimiter: scrape.NewDomainLimiter(cli.Rate),
		Logger:      deps.Logger,
		Strict:      cli.Strict,
		Concurrency: cli.Concurrency,
		DedupAll:    cli.DedupAll,
	}

	deps.Dispatcher, err = scrape.NewDispatcher(deps.Providers, errslog.NewLoggingSink(sink, deps.Logger), opts)
	if err != nil {
		return err
	}

	cmd := &ScrapeCmd{
		Provider: errscrape.ProviderID(cli.SearchEngine),
		Base:     cli.FileName,
	}
	return cmd.Run(deps)
}

func (m *Main) fetcher(cli *CLI, stderr io.Writer) (errscrape.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}

	if cli.Browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return f, nil
	}

	return errhttp.NewFetcher(errhttp.WithTimeout(cli.Timeout)), nil
}

func (m *Main) sink(ctx context.Context, cli *CLI, provider errscrape.ProviderID) (errscrape.Sink, error) {
	switch cli.Format {
	case "xlsx":
		return excelize.NewSink(cli.OutDir), nil
	case "sqlite":
		path := cli.DB
		if path == "" {
			path = m.DBPath
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		s, err := sqlite.NewSink(ctx, m.DB, provider)
		if err != nil {
			m.Close()
			return nil, err
		}
		return s, nil
	default:
		return fs.NewCSVSink(cli.OutDir), nil
	}
}

func newParser(engine string) errscrape.Parser {
	if engine == "xpath" {
		return htmlquery.NewParser()
	}
	return goquery.NewParser()
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "errscrape.db"
	}
	return filepath.Join(home, ".errscrape", "errscrape.db")
}

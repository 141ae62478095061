// Package scrape turns provider documents into datasets of error records.
// Each provider layout is a small traversal over the tag tree built from the
// shared extractors in package errscrape; the Dispatcher selects the layout
// for a provider, fetches its document and writes the resulting groups.
package scrape

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/errscrape"
)

// Layout extracts a dataset from one provider document.
// The set of layouts is closed; use NewLayout to obtain one.
type Layout interface {
	// Extract walks doc and returns its groups. Returns ESTRUCTURE when the
	// expected markup is missing and EEXTRACT when it cannot be grouped.
	Extract(ctx context.Context, doc errscrape.Document) (*errscrape.Dataset, error)

	// Kind returns the layout kind.
	Kind() errscrape.LayoutKind

	sealed()
}

// Options holds the collaborators and switches shared by layouts and the
// Dispatcher.
type Options struct {
	// Fetcher and Parser retrieve the primary document and, for link-index
	// layouts, every linked page.
	Fetcher errscrape.Fetcher
	Parser  errscrape.Parser

	// RateLimiter paces secondary fetches. Optional.
	RateLimiter errscrape.DomainLimiter

	// Logger receives warnings about skipped links. Defaults to discarding.
	Logger *slog.Logger

	// Strict makes any failed linked page abort the whole run instead of
	// dropping only that page's group.
	Strict bool

	// Concurrency bounds parallel secondary fetches. Values below 2 fetch
	// sequentially.
	Concurrency int

	// DedupAll removes duplicate records from the all-dump output.
	DedupAll bool
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// NewLayout returns the layout described by cfg.
func NewLayout(cfg errscrape.ProviderConfig, opts Options) (Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Layout {
	case errscrape.LayoutTable:
		return &TableLayout{provider: cfg.ID}, nil
	case errscrape.LayoutHeadingTable:
		return &HeadingTableLayout{provider: cfg.ID}, nil
	case errscrape.LayoutGroupedBody:
		return &GroupedBodyLayout{provider: cfg.ID}, nil
	case errscrape.LayoutSections:
		return &SectionsLayout{provider: cfg.ID, sizes: cfg.SectionSizes}, nil
	case errscrape.LayoutLinkIndex:
		if opts.Fetcher == nil || opts.Parser == nil {
			return nil, errscrape.Errorf(errscrape.EINVALID, "provider %q: link-index layout requires a fetcher and parser", cfg.ID)
		}
		return &LinkIndexLayout{
			provider:    cfg.ID,
			panelClass:  cfg.PanelClass,
			panelIndex:  cfg.PanelIndex,
			prefix:      cfg.LinkPrefix,
			fetcher:     opts.Fetcher,
			parser:      opts.Parser,
			limiter:     opts.RateLimiter,
			logger:      opts.logger(),
			strict:      opts.Strict,
			concurrency: opts.Concurrency,
		}, nil
	}
	return nil, fmt.Errorf("unhandled layout %q", cfg.Layout)
}

// dataRows returns the rows of table minus its header row.
func dataRows(table errscrape.Node) []errscrape.Node {
	rows := table.FindAll("tr")
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

// findTables returns every table in doc or ESTRUCTURE if there is none.
func findTables(doc errscrape.Document) ([]errscrape.Node, error) {
	tables := doc.FindAll("table")
	if len(tables) == 0 {
		return nil, errscrape.Errorf(errscrape.ESTRUCTURE, "no tables found")
	}
	return tables, nil
}

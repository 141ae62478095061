package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/errscrape"
	"github.com/fwojciec/errscrape/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Providers  []errscrape.ProviderConfig
	Dispatcher *scrape.Dispatcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	SearchEngine string        `short:"s" name:"search-engine" placeholder:"PROVIDER" help:"Provider to scrape (see --list)"`
	FileName     string        `short:"f" name:"file-name" placeholder:"BASE" help:"Base name for output files"`
	Format       string        `enum:"csv,xlsx,sqlite" default:"csv" help:"Output format (${enum})"`
	OutDir       string        `short:"o" name:"out-dir" default:"." type:"path" help:"Directory for csv and xlsx outputs"`
	DB           string        `name:"db" type:"path" help:"SQLite database path for --format=sqlite"`
	Engine       string        `enum:"css,xpath" default:"css" help:"Tag-tree engine (${enum})"`
	Timeout      time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Browser      bool          `help:"Render pages in headless Chrome"`
	Strict       bool          `help:"Fail the run when any linked page fails"`
	DedupAll     bool          `name:"dedup-all" help:"Remove duplicate records from the all-dump"`
	Concurrency  int           `short:"c" default:"1" help:"Concurrent linked page fetches"`
	Rate         float64       `default:"1" help:"Requests per second per host for linked pages (0 disables)"`
	Config       string        `type:"path" placeholder:"FILE" help:"TOML file overriding provider settings"`
	List         bool          `help:"List configured providers and exit"`
	Verbose      bool          `short:"v" help:"Log every fetch and write"`
}

// ScrapeCmd runs one provider and writes its outputs.
type ScrapeCmd struct {
	Provider errscrape.ProviderID
	Base     string
}

// ListCmd prints the configured providers.
type ListCmd struct{}

package scrape

import (
	"context"
	"fmt"

	"github.com/fwojciec/errscrape"
)

// Result summarizes a completed provider run.
type Result struct {
	Groups  int
	Records int
	Outputs []string
}

type provider struct {
	cfg    errscrape.ProviderConfig
	layout Layout
}

// Dispatcher maps provider ids to their document URL and layout, and runs
// exactly one provider per invocation.
type Dispatcher struct {
	opts      Options
	sink      errscrape.Sink
	providers map[errscrape.ProviderID]provider
	order     []errscrape.ProviderID
}

// NewDispatcher builds the provider table from configs. Returns EINVALID if
// a config is invalid or an id is repeated.
func NewDispatcher(configs []errscrape.ProviderConfig, sink errscrape.Sink, opts Options) (*Dispatcher, error) {
	if opts.Fetcher == nil || opts.Parser == nil {
		return nil, errscrape.Errorf(errscrape.EINVALID, "dispatcher requires a fetcher and parser")
	}
	if sink == nil {
		return nil, errscrape.Errorf(errscrape.EINVALID, "dispatcher requires a sink")
	}

	d := &Dispatcher{
		opts:      opts,
		sink:      sink,
		providers: make(map[errscrape.ProviderID]provider, len(configs)),
	}
	for _, cfg := range configs {
		if _, ok := d.providers[cfg.ID]; ok {
			return nil, errscrape.Errorf(errscrape.EINVALID, "duplicate provider %q", cfg.ID)
		}
		layout, err := NewLayout(cfg, opts)
		if err != nil {
			return nil, err
		}
		d.providers[cfg.ID] = provider{cfg: cfg, layout: layout}
		d.order = append(d.order, cfg.ID)
	}
	return d, nil
}

// Providers returns the configured provider ids in configuration order.
func (d *Dispatcher) Providers() []errscrape.ProviderID {
	return append([]errscrape.ProviderID(nil), d.order...)
}

// Provider returns the configuration for id.
func (d *Dispatcher) Provider(id errscrape.ProviderID) (errscrape.ProviderConfig, bool) {
	p, ok := d.providers[id]
	return p.cfg, ok
}

// Extract fetches the provider's document and runs its layout.
// Returns EPROVIDER without fetching anything if id is not configured.
func (d *Dispatcher) Extract(ctx context.Context, id errscrape.ProviderID) (*errscrape.Dataset, error) {
	p, ok := d.providers[id]
	if !ok {
		return nil, errscrape.Errorf(errscrape.EPROVIDER, "unknown provider %q", id)
	}

	html, err := d.opts.Fetcher.Fetch(ctx, p.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%s document: %w", id, err)
	}

	doc, err := d.opts.Parser.Parse(html)
	if err != nil {
		return nil, fmt.Errorf("%s document: %w", id, err)
	}

	ds, err := p.layout.Extract(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%s %s layout: %w", id, p.layout.Kind(), err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// Run extracts the provider's dataset and writes every group to the sink
// as base_<group>, followed by the all-dump as base_all_dump.
func (d *Dispatcher) Run(ctx context.Context, id errscrape.ProviderID, base string) (*Result, error) {
	if base == "" {
		return nil, errscrape.Errorf(errscrape.EINVALID, "output name required")
	}

	ds, err := d.Extract(ctx, id)
	if err != nil {
		return nil, err
	}

	return d.Write(ctx, ds, base)
}

// Write sends every group of ds and its all-dump to the sink. Nothing is
// written if ds fails validation.
func (d *Dispatcher) Write(ctx context.Context, ds *errscrape.Dataset, base string) (*Result, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	result := &Result{Groups: len(ds.Groups)}

	write := func(g errscrape.Group) error {
		name := errscrape.OutputName(base, g.Name)
		if err := d.sink.Write(ctx, name, g.Records); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		result.Outputs = append(result.Outputs, name)
		return nil
	}

	for _, g := range ds.Groups {
		if err := write(g); err != nil {
			return nil, err
		}
	}

	all := ds.All()
	if d.opts.DedupAll {
		all.Records = errscrape.Dedup(all.Records)
	}
	if err := write(all); err != nil {
		return nil, err
	}
	result.Records = len(all.Records)

	return result, nil
}

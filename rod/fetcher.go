// Package rod provides a headless-browser implementation of errscrape.Fetcher
// for provider pages that only render their error tables with JavaScript.
package rod

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/errscrape"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 10 * time.Second

// ErrClosed is wrapped by the FetchError returned from Fetch after Close.
var ErrClosed = errors.New("fetcher is closed")

// Ensure Fetcher implements errscrape.Fetcher at compile time.
var _ errscrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
	closed  atomic.Bool
}

// Option configures a Fetcher.
type Option func(*fetcherConfig)

type fetcherConfig struct {
	timeout  time.Duration
	maxPages int64
}

// WithFetchTimeout sets the per-page load timeout.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *fetcherConfig) {
		c.timeout = d
	}
}

// WithRecycleAfter sets how many pages are loaded before the browser is
// replaced. Defaults to DefaultMaxPages.
func WithRecycleAfter(n int64) Option {
	return func(c *fetcherConfig) {
		c.maxPages = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	cfg := fetcherConfig{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	manager, err := NewBrowserManager(WithMaxPages(cfg.maxPages))
	if err != nil {
		return nil, err
	}

	return &Fetcher{manager: manager, timeout: cfg.timeout}, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
// Failures are reported as *errscrape.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", &errscrape.FetchError{URL: url, Kind: errscrape.FetchOther, Err: ErrClosed}
	}
	if err := ctx.Err(); err != nil {
		return "", &errscrape.FetchError{URL: url, Kind: errscrape.FetchOther, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	html, err := f.render(ctx, url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr == context.DeadlineExceeded {
			return "", &errscrape.FetchError{URL: url, Kind: errscrape.FetchTimeout, Err: fmt.Errorf("%w: %v", ctxErr, err)}
		}
		return "", &errscrape.FetchError{URL: url, Kind: errscrape.FetchOther, Err: err}
	}
	f.manager.IncrementPageCount()

	return html, nil
}

func (f *Fetcher) render(ctx context.Context, url string) (string, error) {
	browser := f.manager.Browser()
	if browser == nil {
		return "", fmt.Errorf("browser unavailable")
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	return page.HTML()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

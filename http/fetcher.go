// Package http provides an HTTP-based implementation of errscrape.Fetcher
// for provider pages that don't require JavaScript rendering.
package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/errscrape"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "errscrape/1.0"

// maxBodySize caps the bytes read from a single response.
const maxBodySize = 16 << 20

// Ensure Fetcher implements errscrape.Fetcher at compile time.
var _ errscrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Response bodies are decoded to UTF-8 before they are returned.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Failures are
// reported as *errscrape.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &errscrape.FetchError{URL: url, Kind: errscrape.FetchOther, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &errscrape.FetchError{URL: url, Kind: classify(err), Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusGone:
		return "", &errscrape.FetchError{URL: url, Kind: errscrape.FetchNotFound, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	default:
		return "", &errscrape.FetchError{URL: url, Kind: errscrape.FetchOther, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", &errscrape.FetchError{URL: url, Kind: classify(err), Err: err}
	}

	return decode(body, resp.Header.Get("Content-Type")), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func classify(err error) errscrape.FetchKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return errscrape.FetchTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errscrape.FetchTimeout
	}
	return errscrape.FetchOther
}

// decode converts body to UTF-8. The Content-Type header, a BOM and meta
// tags take precedence; when none of them names a charset, the statistical
// detector picks one.
func decode(body []byte, contentType string) string {
	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if !certain && name == "windows-1252" && hasHighBit(body) {
		if res, err := chardet.NewHtmlDetector().DetectBest(body); err == nil {
			if e, n := charset.Lookup(res.Charset); e != nil {
				enc, name = e, n
			}
		}
	}
	if name == "utf-8" {
		return string(body)
	}

	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return string(body)
	}
	return string(out)
}

func hasHighBit(b []byte) bool {
	return bytes.IndexFunc(b, func(r rune) bool { return r >= 0x80 }) >= 0
}

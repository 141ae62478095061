package scrape_test

import (
	"context"
	"testing"

	"github.com/fwojciec/errscrape"
	"github.com/fwojciec/errscrape/goquery"
	"github.com/fwojciec/errscrape/mock"
	"github.com/fwojciec/errscrape/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) errscrape.Document {
	t.Helper()

	doc, err := goquery.NewParser().Parse(html)
	require.NoError(t, err)
	return doc
}

func newLayout(t *testing.T, cfg errscrape.ProviderConfig, opts scrape.Options) scrape.Layout {
	t.Helper()

	layout, err := scrape.NewLayout(cfg, opts)
	require.NoError(t, err)
	return layout
}

func TestNewLayout(t *testing.T) {
	t.Parallel()

	t.Run("returns the configured kind", func(t *testing.T) {
		t.Parallel()

		for _, cfg := range errscrape.DefaultProviders() {
			layout := newLayout(t, cfg, scrape.Options{
				Fetcher: &mock.Fetcher{},
				Parser:  goquery.NewParser(),
			})
			assert.Equal(t, cfg.Layout, layout.Kind())
		}
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		t.Parallel()

		_, err := scrape.NewLayout(errscrape.ProviderConfig{ID: "x", URL: "http://x", Layout: "grid"}, scrape.Options{})

		require.Error(t, err)
		assert.Equal(t, errscrape.EINVALID, errscrape.ErrorCode(err))
	})

	t.Run("link index requires fetcher and parser", func(t *testing.T) {
		t.Parallel()

		cfg := errscrape.ProviderConfig{ID: "g", URL: "http://x", Layout: errscrape.LayoutLinkIndex, PanelClass: "tree"}

		_, err := scrape.NewLayout(cfg, scrape.Options{})

		require.Error(t, err)
		assert.Equal(t, errscrape.EINVALID, errscrape.ErrorCode(err))
	})
}

var tableConfig = errscrape.ProviderConfig{ID: errscrape.ProviderBing, URL: "http://example.com", Layout: errscrape.LayoutTable}

func TestTableLayout_Extract(t *testing.T) {
	t.Parallel()

	t.Run("collects every table after the first into one group", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body>
<table><tr><td>Header</td><td>ignored page table</td></tr></table>
<table>
<tr><th>Code</th><th>Description</th></tr>
<tr><td>100</td><td>Internal error</td></tr>
<tr><td>105</td><td>Invalid credentials</td></tr>
</table>
<table>
<tr><th>Code</th><th>Description</th></tr>
<tr><td>1001</td><td>Campaign   not found</td></tr>
<tr><td>1002</td><td></td></tr>
</table>
</body></html>`)

		ds, err := newLayout(t, tableConfig, scrape.Options{}).Extract(context.Background(), doc)

		require.NoError(t, err)
		require.Len(t, ds.Groups, 1)
		assert.Equal(t, scrape.TableGroupName, ds.Groups[0].Name)
		assert.Equal(t, []errscrape.Record{
			{Code: "100", Message: "Internal error"},
			{Code: "105", Message: "Invalid credentials"},
			{Code: "1001", Message: "Campaign not found"},
		}, ds.Groups[0].Records)
		assert.Equal(t, ds.Groups[0].Records, ds.All().Records)
		assert.Equal(t, errscrape.ProviderBing, ds.Provider)
	})

	t.Run("no tables is a structure error", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body><p>moved</p></body></html>`)

		_, err := newLayout(t, tableConfig, scrape.Options{}).Extract(context.Background(), doc)

		require.Error(t, err)
		assert.Equal(t, errscrape.ESTRUCTURE, errscrape.ErrorCode(err))
	})

	t.Run("only the page table is an extraction error", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body><table><tr><td>a</td><td>b</td></tr></table></body></html>`)

		_, err := newLayout(t, tableConfig, scrape.Options{}).Extract(context.Background(), doc)

		require.Error(t, err)
		assert.Equal(t, errscrape.EEXTRACT, errscrape.ErrorCode(err))
	})
}

var headingConfig = errscrape.ProviderConfig{ID: errscrape.ProviderBaidu, URL: "http://example.com", Layout: errscrape.LayoutHeadingTable}

func TestHeadingTableLayout_Extract(t *testing.T) {
	t.Parallel()

	t.Run("names each table from the following headings", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body>
<h3>Error Code</h3>
<h3>System  Errors</h3>
<table>
<tr><td>Code</td><td>Message</td></tr>
<tr><td>1</td><td>Unknown error</td></tr>
</table>
<h3>Account Errors</h3>
<table>
<tr><td>Code</td><td>Message</td></tr>
<tr><td>901</td><td>Account frozen</td></tr>
<tr><td>902</td><td>Account
  closed</td></tr>
</table>
</body></html>`)

		ds, err := newLayout(t, headingConfig, scrape.Options{}).Extract(context.Background(), doc)

		require.NoError(t, err)
		require.Len(t, ds.Groups, 2)
		assert.Equal(t, "System_Errors", ds.Groups[0].Name)
		assert.Equal(t, []errscrape.Record{{Code: "1", Message: "Unknown error"}}, ds.Groups[0].Records)
		assert.Equal(t, "Account_Errors", ds.Groups[1].Name)
		assert.Len(t, ds.Groups[1].Records, 2)
		assert.Len(t, ds.All().Records, 3)
	})

	t.Run("fails when headings run out", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body>
<h3>Error Code</h3>
<h3>System Errors</h3>
<table><tr><td>Code</td></tr><tr><td>1</td><td>a</td></tr></table>
<table><tr><td>Code</td></tr><tr><td>2</td><td>b</td></tr></table>
</body></html>`)

		_, err := newLayout(t, headingConfig, scrape.Options{}).Extract(context.Background(), doc)

		require.Error(t, err)
		assert.Equal(t, errscrape.EEXTRACT, errscrape.ErrorCode(err))
	})
}

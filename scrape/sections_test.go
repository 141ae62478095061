package scrape_test

import (
	"context"
	"testing"

	"github.com/fwojciec/errscrape"
	"github.com/fwojciec/errscrape/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionsConfig(sizes ...int) errscrape.ProviderConfig {
	return errscrape.ProviderConfig{
		ID:           errscrape.ProviderYahoo,
		URL:          "http://example.com",
		Layout:       errscrape.LayoutSections,
		SectionSizes: sizes,
	}
}

const sectionsPage = `<html><body>
<h4>General errors</h4>
<table>
<tr><th>Code</th><th>Message</th></tr>
<tr><td>0001</td><td>Internal error</td></tr>
</table>
<table>
<tr><th>Code</th><th>Message</th></tr>
<tr><td>0002</td><td>Invalid parameter</td></tr>
</table>
<h4>Quota errors</h4>
<table>
<tr><th>Code</th><th>Message</th></tr>
<tr><td>0100</td><td>Quota exceeded</td></tr>
</table>
</body></html>`

func TestSectionsLayout_Extract(t *testing.T) {
	t.Parallel()

	t.Run("splits tables into configured runs", func(t *testing.T) {
		t.Parallel()

		ds, err := newLayout(t, sectionsConfig(2, 1), scrape.Options{}).Extract(context.Background(), parse(t, sectionsPage))

		require.NoError(t, err)
		assert.Equal(t, []errscrape.Group{
			{
				Name: "General_errors",
				Records: []errscrape.Record{
					{Code: "0001", Message: "Internal error"},
					{Code: "0002", Message: "Invalid parameter"},
				},
			},
			{
				Name:    "Quota_errors",
				Records: []errscrape.Record{{Code: "0100", Message: "Quota exceeded"}},
			},
		}, ds.Groups)
	})

	t.Run("sizes not matching the table count", func(t *testing.T) {
		t.Parallel()

		_, err := newLayout(t, sectionsConfig(1, 1), scrape.Options{}).Extract(context.Background(), parse(t, sectionsPage))

		require.Error(t, err)
		assert.Equal(t, errscrape.EEXTRACT, errscrape.ErrorCode(err))
	})

	t.Run("more sections than headings", func(t *testing.T) {
		t.Parallel()

		_, err := newLayout(t, sectionsConfig(1, 1, 1), scrape.Options{}).Extract(context.Background(), parse(t, sectionsPage))

		require.Error(t, err)
		assert.Equal(t, errscrape.EEXTRACT, errscrape.ErrorCode(err))
	})
}

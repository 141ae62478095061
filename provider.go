package errscrape

// ProviderID identifies a provider whose error catalogue can be scraped.
type ProviderID string

// Built-in providers.
const (
	ProviderBing   ProviderID = "bing"
	ProviderBaidu  ProviderID = "baidu"
	ProviderYandex ProviderID = "yandex"
	ProviderGoogle ProviderID = "google"
	ProviderYahoo  ProviderID = "yahoo"
)

// LayoutKind names one of the fixed document layouts a provider can use.
type LayoutKind string

// Supported layouts.
const (
	// LayoutTable collects every table after the first into one group.
	LayoutTable LayoutKind = "table"

	// LayoutHeadingTable makes one group per table, named by h3 headings.
	LayoutHeadingTable LayoutKind = "heading-table"

	// LayoutGroupedBody makes one group per tbody, named by its class row.
	LayoutGroupedBody LayoutKind = "grouped-body"

	// LayoutLinkIndex follows navigation links and reads one description
	// list per linked page.
	LayoutLinkIndex LayoutKind = "link-index"

	// LayoutSections partitions tables into runs of known sizes named by
	// h4 headings.
	LayoutSections LayoutKind = "sections"
)

// Valid reports whether k is one of the supported layouts.
func (k LayoutKind) Valid() bool {
	switch k {
	case LayoutTable, LayoutHeadingTable, LayoutGroupedBody, LayoutLinkIndex, LayoutSections:
		return true
	}
	return false
}

// ProviderConfig describes where a provider publishes its catalogue and
// which layout reads it.
type ProviderConfig struct {
	ID     ProviderID `toml:"id"`
	URL    string     `toml:"url"`
	Layout LayoutKind `toml:"layout"`

	// Link-index layout: links are read from the PanelIndex-th div carrying
	// class PanelClass and resolved against LinkPrefix.
	PanelClass string `toml:"panel_class,omitempty"`
	PanelIndex int    `toml:"panel_index,omitempty"`
	LinkPrefix string `toml:"link_prefix,omitempty"`

	// Sections layout: number of tables in each h4 section, in page order.
	// Tied to the current revision of the provider's page.
	SectionSizes []int `toml:"section_sizes,omitempty"`
}

// Validate returns an error if the provider config contains invalid fields.
func (c *ProviderConfig) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "provider id required")
	}
	if c.URL == "" {
		return Errorf(EINVALID, "provider %q: url required", c.ID)
	}
	if !c.Layout.Valid() {
		return Errorf(EINVALID, "provider %q: unknown layout %q", c.ID, c.Layout)
	}
	switch c.Layout {
	case LayoutLinkIndex:
		if c.PanelClass == "" {
			return Errorf(EINVALID, "provider %q: panel class required", c.ID)
		}
		if c.PanelIndex < 0 {
			return Errorf(EINVALID, "provider %q: panel index must not be negative", c.ID)
		}
	case LayoutSections:
		if len(c.SectionSizes) == 0 {
			return Errorf(EINVALID, "provider %q: section sizes required", c.ID)
		}
		for _, n := range c.SectionSizes {
			if n <= 0 {
				return Errorf(EINVALID, "provider %q: section sizes must be positive", c.ID)
			}
		}
	}
	return nil
}

// DefaultProviders returns the built-in provider table.
func DefaultProviders() []ProviderConfig {
	return []ProviderConfig{
		{
			ID:     ProviderBing,
			URL:    "http://msdn.microsoft.com/en-US/library/bing-ads-operation-error-codes.aspx",
			Layout: LayoutTable,
		},
		{
			ID:     ProviderBaidu,
			URL:    "http://dev2.baidu.com/sms_zh/en/Error_Code",
			Layout: LayoutHeadingTable,
		},
		{
			ID:     ProviderYandex,
			URL:    "http://tech.yandex.com/direct/doc/dg-v4/reference/ErrorCodes-docpage/",
			Layout: LayoutGroupedBody,
		},
		{
			ID:         ProviderGoogle,
			URL:        "http://developers.google.com/adwords/api/docs/reference/v201509/AdGroupAdService.ApiError",
			Layout:     LayoutLinkIndex,
			PanelClass: "tree",
			PanelIndex: 2,
			LinkPrefix: "https://developers.google.com/adwords/api/docs/reference/v201509/",
		},
		{
			ID:           ProviderYahoo,
			URL:          "https://developer.yahoo.com/gemini/guide/troubleshooting/error-codes.html",
			Layout:       LayoutSections,
			SectionSizes: []int{2, 1, 3},
		},
	}
}

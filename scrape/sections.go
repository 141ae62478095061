package scrape

import (
	"context"

	"github.com/fwojciec/errscrape"
)

var _ Layout = (*SectionsLayout)(nil)

// SectionsLayout reads pages where consecutive runs of tables belong to one
// h4 section. The run lengths come from configuration and must match the
// current revision of the page.
type SectionsLayout struct {
	provider errscrape.ProviderID
	sizes    []int
}

// Kind returns errscrape.LayoutSections.
func (l *SectionsLayout) Kind() errscrape.LayoutKind { return errscrape.LayoutSections }

func (l *SectionsLayout) sealed() {}

// Extract returns one group per configured section.
func (l *SectionsLayout) Extract(_ context.Context, doc errscrape.Document) (*errscrape.Dataset, error) {
	tables, err := findTables(doc)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range l.sizes {
		total += n
	}
	if total != len(tables) {
		return nil, errscrape.Errorf(errscrape.EEXTRACT, "section sizes cover %d tables but the page has %d", total, len(tables))
	}

	headings := doc.FindAll("h4")
	if len(headings) < len(l.sizes) {
		return nil, errscrape.Errorf(errscrape.EEXTRACT, "expected %d section headings, found %d", len(l.sizes), len(headings))
	}

	groups := make([]errscrape.Group, 0, len(l.sizes))
	offset := 0
	for i, n := range l.sizes {
		var records []errscrape.Record
		for _, table := range tables[offset : offset+n] {
			records = append(records, errscrape.ExtractRows(dataRows(table))...)
		}
		groups = append(groups, errscrape.Group{
			Name:    errscrape.GroupName(headings[i].Text()),
			Records: records,
		})
		offset += n
	}

	return &errscrape.Dataset{Provider: l.provider, Groups: groups}, nil
}

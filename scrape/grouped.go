package scrape

import (
	"context"

	"github.com/fwojciec/errscrape"
)

var _ Layout = (*GroupedBodyLayout)(nil)

// GroupedBodyLayout reads pages whose data tables split codes into classes,
// one tbody per class. A body's first row holds the class label, except in
// the first body on the page, where row 0 repeats the column headers and
// the label is row 1.
type GroupedBodyLayout struct {
	provider errscrape.ProviderID
}

// Kind returns errscrape.LayoutGroupedBody.
func (l *GroupedBodyLayout) Kind() errscrape.LayoutKind { return errscrape.LayoutGroupedBody }

func (l *GroupedBodyLayout) sealed() {}

// Extract returns one group per tbody of every table after the first.
func (l *GroupedBodyLayout) Extract(_ context.Context, doc errscrape.Document) (*errscrape.Dataset, error) {
	tables, err := findTables(doc)
	if err != nil {
		return nil, err
	}
	if len(tables) < 2 {
		return nil, errscrape.Errorf(errscrape.EEXTRACT, "expected data tables after the first table, found %d table(s)", len(tables))
	}

	var groups []errscrape.Group
	for _, table := range tables[1:] {
		for _, body := range table.FindAll("tbody") {
			label, start := 0, 1
			if len(groups) == 0 {
				label, start = 1, 2
			}

			rows := body.FindAll("tr")
			if len(rows) <= label {
				return nil, errscrape.Errorf(errscrape.EEXTRACT, "table body %d has %d rows, missing its class label", len(groups)+1, len(rows))
			}

			groups = append(groups, errscrape.Group{
				Name:    errscrape.GroupName(rows[label].Text()),
				Records: errscrape.ExtractRows(rows[start:]),
			})
		}
	}

	if len(groups) == 0 {
		return nil, errscrape.Errorf(errscrape.ESTRUCTURE, "no table bodies found")
	}

	return &errscrape.Dataset{Provider: l.provider, Groups: groups}, nil
}

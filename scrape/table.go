package scrape

import (
	"context"

	"github.com/fwojciec/errscrape"
)

// TableGroupName names the single group produced by TableLayout.
const TableGroupName = "errors"

var _ Layout = (*TableLayout)(nil)

// TableLayout reads pages where the first table is page furniture and every
// following table lists codes under one header row. All data tables form a
// single group.
type TableLayout struct {
	provider errscrape.ProviderID
}

// Kind returns errscrape.LayoutTable.
func (l *TableLayout) Kind() errscrape.LayoutKind { return errscrape.LayoutTable }

func (l *TableLayout) sealed() {}

// Extract returns one group holding the rows of every table after the first.
func (l *TableLayout) Extract(_ context.Context, doc errscrape.Document) (*errscrape.Dataset, error) {
	tables, err := findTables(doc)
	if err != nil {
		return nil, err
	}
	if len(tables) < 2 {
		return nil, errscrape.Errorf(errscrape.EEXTRACT, "expected data tables after the first table, found %d table(s)", len(tables))
	}

	var records []errscrape.Record
	for _, table := range tables[1:] {
		records = append(records, errscrape.ExtractRows(dataRows(table))...)
	}

	return &errscrape.Dataset{
		Provider: l.provider,
		Groups:   []errscrape.Group{{Name: TableGroupName, Records: records}},
	}, nil
}

var _ Layout = (*HeadingTableLayout)(nil)

// HeadingTableLayout reads pages with one table per h3 section. The first
// h3 is the page title; the i-th table is named by the (i+1)-th h3.
type HeadingTableLayout struct {
	provider errscrape.ProviderID
}

// Kind returns errscrape.LayoutHeadingTable.
func (l *HeadingTableLayout) Kind() errscrape.LayoutKind { return errscrape.LayoutHeadingTable }

func (l *HeadingTableLayout) sealed() {}

// Extract returns one group per table.
func (l *HeadingTableLayout) Extract(_ context.Context, doc errscrape.Document) (*errscrape.Dataset, error) {
	var names []string
	if headings := doc.FindAll("h3"); len(headings) > 1 {
		for _, h := range headings[1:] {
			names = append(names, errscrape.GroupName(h.Text()))
		}
	}

	tables, err := findTables(doc)
	if err != nil {
		return nil, err
	}
	if len(names) < len(tables) {
		return nil, errscrape.Errorf(errscrape.EEXTRACT, "found %d tables but only %d section headings", len(tables), len(names))
	}

	groups := make([]errscrape.Group, 0, len(tables))
	for i, table := range tables {
		groups = append(groups, errscrape.Group{
			Name:    names[i],
			Records: errscrape.ExtractRows(dataRows(table)),
		})
	}

	return &errscrape.Dataset{Provider: l.provider, Groups: groups}, nil
}

package errscrape

import "strings"

// Link is an anchor found in a navigation container.
type Link struct {
	Href  string
	Label string
}

// ExtractRows converts table rows into records. Rows without td cells are
// header or spacer rows and are skipped. The first cell is the code, the
// second the message; rows whose normalized message is empty are dropped.
func ExtractRows(rows []Node) []Record {
	var records []Record
	for _, row := range rows {
		cells := row.FindAll("td")
		if len(cells) == 0 {
			continue
		}

		var message string
		if len(cells) > 1 {
			message = NormalizeMessage(cells[1].Text())
		}
		if message == "" {
			continue
		}

		records = append(records, Record{
			Code:    NormalizeCode(cells[0].Text()),
			Message: message,
		})
	}
	return records
}

// ExtractDescriptionList pairs the i-th dt of a description list with its
// i-th dd. Returns EEXTRACT if the term and definition counts differ.
// Pairs whose normalized message is empty are dropped.
func ExtractDescriptionList(dl Node) ([]Record, error) {
	terms := dl.FindAll("dt")
	defs := dl.FindAll("dd")
	if len(terms) != len(defs) {
		return nil, Errorf(EEXTRACT, "description list has %d terms but %d definitions", len(terms), len(defs))
	}

	var records []Record
	for i := range terms {
		message := NormalizeMessage(defs[i].Text())
		if message == "" {
			continue
		}
		records = append(records, Record{
			Code:    NormalizeCode(strings.Trim(terms[i].Text(), "\n")),
			Message: message,
		})
	}
	return records, nil
}

// ExtractLinks returns every anchor below container that has an href, in
// document order. The label is the anchor text with surrounding whitespace
// trimmed and may be empty.
func ExtractLinks(container Node) []Link {
	var links []Link
	for _, a := range container.FindAll("a") {
		href, ok := a.Attr("href")
		if !ok {
			continue
		}
		links = append(links, Link{
			Href:  href,
			Label: strings.TrimSpace(a.Text()),
		})
	}
	return links
}

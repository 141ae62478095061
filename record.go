package errscrape

// AllDumpName names the synthesized group holding every record of a run.
const AllDumpName = "all_dump"

// Record is a normalized error code and its message.
// Code never contains whitespace; Message is never empty.
type Record struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Group is a named, ordered section of a provider's catalogue: one table,
// one error class or one linked sub-page.
type Group struct {
	Name    string   `json:"name"`
	Records []Record `json:"records"`
}

// Dataset holds every group extracted during one provider run.
type Dataset struct {
	Provider ProviderID `json:"provider"`
	Groups   []Group    `json:"groups"`
}

// Validate returns EEXTRACT if the dataset has no groups or no records, or
// if its group names cannot serve as distinct output names: a name is
// empty, repeated, or equal to AllDumpName.
func (d *Dataset) Validate() error {
	if len(d.Groups) == 0 {
		return Errorf(EEXTRACT, "no groups extracted for provider %q", d.Provider)
	}

	seen := make(map[string]struct{}, len(d.Groups))
	records := 0
	for i, g := range d.Groups {
		switch {
		case g.Name == "":
			return Errorf(EEXTRACT, "group %d of provider %q has no name", i+1, d.Provider)
		case g.Name == AllDumpName:
			return Errorf(EEXTRACT, "group name %q is reserved", g.Name)
		}
		if _, ok := seen[g.Name]; ok {
			return Errorf(EEXTRACT, "duplicate group name %q", g.Name)
		}
		seen[g.Name] = struct{}{}
		records += len(g.Records)
	}

	if records == 0 {
		return Errorf(EEXTRACT, "no records extracted for provider %q", d.Provider)
	}
	return nil
}

// All returns the all-dump group: the records of every group concatenated
// in group order. Duplicates are kept.
func (d *Dataset) All() Group {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Records)
	}
	records := make([]Record, 0, n)
	for _, g := range d.Groups {
		records = append(records, g.Records...)
	}
	return Group{Name: AllDumpName, Records: records}
}

// Dedup removes exact duplicate records, keeping the first occurrence and
// the relative order of the survivors.
func Dedup(records []Record) []Record {
	seen := make(map[Record]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Package toml loads provider configuration overrides from TOML files.
//
// A file lists providers as an array of tables:
//
//	[[provider]]
//	id = "yahoo"
//	url = "https://developer.yahoo.com/gemini/guide/troubleshooting/error-codes.html"
//	section_sizes = [2, 1, 3]
//
// An entry whose id matches a base provider overrides only the fields it
// sets; any other entry adds a provider and must be complete.
package toml

import (
	"errors"
	"io"
	"os"

	"github.com/fwojciec/errscrape"
	"github.com/pelletier/go-toml/v2"
)

type file struct {
	Providers []entry `toml:"provider"`
}

type entry struct {
	ID           string `toml:"id"`
	URL          string `toml:"url"`
	Layout       string `toml:"layout"`
	PanelClass   string `toml:"panel_class"`
	PanelIndex   *int   `toml:"panel_index"`
	LinkPrefix   string `toml:"link_prefix"`
	SectionSizes []int  `toml:"section_sizes"`
}

// Load reads the file at path and merges it over base.
// Returns ENOTFOUND if the file does not exist.
func Load(path string, base []errscrape.ProviderConfig) ([]errscrape.ProviderConfig, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errscrape.Errorf(errscrape.ENOTFOUND, "config file %s not found", path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f, base)
}

// Decode reads TOML from r and merges it over base. The result keeps the
// order of base, followed by added providers in file order. Every resulting
// config is validated.
func Decode(r io.Reader, base []errscrape.ProviderConfig) ([]errscrape.ProviderConfig, error) {
	var doc file
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errscrape.Errorf(errscrape.EINVALID, "parse config: %v", err)
	}

	configs := append([]errscrape.ProviderConfig(nil), base...)
	index := make(map[errscrape.ProviderID]int, len(configs))
	for i, c := range configs {
		index[c.ID] = i
	}

	for _, e := range doc.Providers {
		if e.ID == "" {
			return nil, errscrape.Errorf(errscrape.EINVALID, "provider id required")
		}
		id := errscrape.ProviderID(e.ID)
		if i, ok := index[id]; ok {
			e.apply(&configs[i])
			continue
		}
		cfg := errscrape.ProviderConfig{ID: id}
		e.apply(&cfg)
		index[id] = len(configs)
		configs = append(configs, cfg)
	}

	for i := range configs {
		if err := configs[i].Validate(); err != nil {
			return nil, err
		}
	}
	return configs, nil
}

func (e entry) apply(c *errscrape.ProviderConfig) {
	if e.URL != "" {
		c.URL = e.URL
	}
	if e.Layout != "" {
		c.Layout = errscrape.LayoutKind(e.Layout)
	}
	if e.PanelClass != "" {
		c.PanelClass = e.PanelClass
	}
	if e.PanelIndex != nil {
		c.PanelIndex = *e.PanelIndex
	}
	if e.LinkPrefix != "" {
		c.LinkPrefix = e.LinkPrefix
	}
	if e.SectionSizes != nil {
		c.SectionSizes = append([]int(nil), e.SectionSizes...)
	}
}

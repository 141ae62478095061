package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/errscrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	result, err := deps.Dispatcher.Run(deps.Ctx, c.Provider, c.Base)
	if err != nil {
		if errscrape.ErrorCode(err) == errscrape.EPROVIDER {
			ids := make([]string, 0, len(deps.Providers))
			for _, p := range deps.Providers {
				ids = append(ids, string(p.ID))
			}
			fmt.Fprintf(deps.Stderr, "Hint: known providers are %s\n", strings.Join(ids, ", "))
		}
		return err
	}

	for _, name := range result.Outputs {
		fmt.Fprintln(deps.Stdout, name)
	}
	fmt.Fprintf(deps.Stdout, "Wrote %d records in %d groups\n", result.Records, result.Groups)
	return nil
}

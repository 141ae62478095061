package main

import "fmt"

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	for _, p := range deps.Providers {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", p.ID, p.Layout, p.URL)
	}
	return nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docsearch"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")

	results, err := deps.Search.Search(deps.Ctx, query, docsearch.SearchOptions{
		Topic:   optional(c.Topic),
		Project: optional(c.Project),
		Team:    optional(c.Team),
		Limit:   c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No documents match %q.\n", query)
		return nil
	}

	for i, r := range results {
		doc := r.Document
		fmt.Fprintf(deps.Stdout, "%d. %s  (%s)\n", i+1, doc.Title, doc.ID)
		fmt.Fprintf(deps.Stdout, "   %s / %s / %s\n", doc.Topic, doc.Project, doc.Team)
		fmt.Fprintf(deps.Stdout, "   %s\n", strings.Join(strings.Fields(r.Snippet), " "))
		fmt.Fprintf(deps.Stdout, "   %s\n", doc.FileURL)
	}
	return nil
}

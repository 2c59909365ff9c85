package main

import (
	"fmt"

	"github.com/fwojciec/docsearch"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, docsearch.DocumentFilter{
		Topic:   optional(c.Topic),
		Project: optional(c.Project),
		Team:    optional(c.Team),
		Limit:   c.Limit,
		Offset:  c.Offset,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'docsearch add' to upload files.")
		return nil
	}

	for _, d := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-20s  %s\n",
			d.ID, d.UploadedAt.Format("2006-01-02"), d.Topic, d.Title)
	}
	return nil
}

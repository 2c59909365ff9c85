package main

import (
	"fmt"

	"github.com/fwojciec/docsearch"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, docsearch.DocumentFilter{
		Topic:   optional(c.Topic),
		Project: optional(c.Project),
		Team:    optional(c.Team),
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	for _, doc := range docs {
		path, err := deps.Writer.WriteDocument(deps.Ctx, doc)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: writing %s: %v\n", doc.ID, err)
			return err
		}
		fmt.Fprintln(deps.Stdout, path)
	}

	fmt.Fprintf(deps.Stdout, "Exported %d documents to %s\n", len(docs), c.Dir)
	return nil
}

package main

import (
	"fmt"

	"github.com/fwojciec/docsearch"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	doc, err := deps.Documents.FindDocumentByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, docsearch.FormatDocument(doc))
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/docsearch"
)

// Run executes the categorize command.
func (c *CategorizeCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	text, err := deps.Extractor.ExtractText(c.File, data)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, docsearch.FormatCategorization(deps.Categorizer.Categorize(deps.Ctx, text)))
	return nil
}

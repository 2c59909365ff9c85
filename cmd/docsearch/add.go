package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/ingest"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	if c.Title != "" && len(c.Files) > 1 {
		fmt.Fprintf(deps.Stderr, "error: --title can only be used with a single file\n")
		return docsearch.Errorf(docsearch.EINVALID, "--title can only be used with a single file")
	}

	uploads := make([]*docsearch.Upload, 0, len(c.Files))
	for _, path := range c.Files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		uploads = append(uploads, &docsearch.Upload{Name: path, Title: c.Title, Data: data})
	}

	if c.Concurrency > 0 {
		deps.Ingester.Concurrency = c.Concurrency
	}

	progress := func(event ingest.ProgressEvent) {
		switch event.Type {
		case ingest.ProgressCompleted:
			doc := event.Document
			fmt.Fprintf(deps.Stdout, "  added %s  %s  [%s / %s / %s]\n",
				doc.ID, doc.Title, doc.Topic, doc.Project, doc.Team)
		case ingest.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.Name, docsearch.ErrorMessage(event.Error))
		case ingest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %s\n", event.Name, docsearch.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Ingester.IngestAll(deps.Ctx, uploads, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error adding files: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added %d of %d files (%s, %s)\n",
		result.Saved, len(uploads), ingest.FormatBytes(result.Bytes), ingest.FormatTokens(result.Tokens))
	if result.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d duplicates\n", result.Skipped)
	}

	if result.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", result.Failed, len(uploads))
	}
	return nil
}

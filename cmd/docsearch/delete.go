package main

import (
	"fmt"

	"github.com/fwojciec/docsearch"
)

// Run executes the delete command. The index entry is removed first; a
// stored file that is already gone is not an error.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return docsearch.Errorf(docsearch.EINVALID, "use --force to confirm deletion")
	}

	doc, err := deps.Documents.FindDocumentByID(deps.Ctx, c.ID)
	if err != nil {
		if docsearch.ErrorCode(err) == docsearch.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'docsearch list' to see available documents.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if err := deps.Documents.DeleteDocument(deps.Ctx, doc.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if doc.FileKey != "" {
		if err := deps.Storage.Delete(deps.Ctx, doc.FileKey); err != nil && docsearch.ErrorCode(err) != docsearch.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "warning: stored file %s was not removed: %v\n", doc.FileKey, err)
		}
	}

	fmt.Fprintf(deps.Stdout, "Deleted document %q (%s)\n", doc.Title, doc.ID)
	return nil
}

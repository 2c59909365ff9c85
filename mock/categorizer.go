package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var _ docsearch.Categorizer = (*Categorizer)(nil)

// Categorizer is a mock implementation of docsearch.Categorizer.
type Categorizer struct {
	CategorizeFn func(ctx context.Context, content string) docsearch.Categorization
}

func (c *Categorizer) Categorize(ctx context.Context, content string) docsearch.Categorization {
	return c.CategorizeFn(ctx, content)
}

// Package slog provides logging decorators for docsearch services.
package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/docsearch"
)

// Ensure LoggingCategorizer implements docsearch.Categorizer.
var _ docsearch.Categorizer = (*LoggingCategorizer)(nil)

// LoggingCategorizer wraps a Categorizer with logging.
type LoggingCategorizer struct {
	next   docsearch.Categorizer
	logger *slog.Logger
}

// NewLoggingCategorizer creates a new LoggingCategorizer.
func NewLoggingCategorizer(next docsearch.Categorizer, logger *slog.Logger) *LoggingCategorizer {
	return &LoggingCategorizer{next: next, logger: logger}
}

// Categorize delegates to the wrapped categorizer and logs the result.
func (c *LoggingCategorizer) Categorize(ctx context.Context, content string) (result docsearch.Categorization) {
	defer func(begin time.Time) {
		c.logger.Info("categorize",
			"chars", utf8.RuneCountInString(content),
			"topic", result.Topic,
			"project", result.Project,
			"team", result.Team,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return c.next.Categorize(ctx, content)
}

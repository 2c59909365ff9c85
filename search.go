package docsearch

import "context"

// DefaultSearchLimit is the number of results returned when no limit is set.
const DefaultSearchLimit = 50

// SearchService provides full-text search over document content.
type SearchService interface {
	// Search returns documents matching query, best match first.
	// Returns EINVALID if query is empty.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

// SearchOptions configures search behavior.
type SearchOptions struct {
	// Restrict results to a taxonomy value.
	Topic   *string `json:"topic,omitempty"`
	Project *string `json:"project,omitempty"`
	Team    *string `json:"team,omitempty"`

	// Maximum number of results to return. Defaults to DefaultSearchLimit.
	Limit int `json:"limit,omitempty"`
}

// SearchResult represents a search match.
type SearchResult struct {
	Document *Document `json:"document"`

	// Snippet is an excerpt of the content around the match.
	Snippet string `json:"snippet"`

	// Rank orders results; lower is a better match.
	Rank float64 `json:"rank"`
}

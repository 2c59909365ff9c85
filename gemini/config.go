// Package gemini implements docsearch.Categorizer on top of the Gemini
// generateContent REST endpoint.
package gemini

import (
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/docsearch"
)

// Defaults for Config.
const (
	DefaultBaseURL         = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel           = "gemini-2.5-flash"
	DefaultMaxContentChars = 4000
	DefaultTimeout         = 30 * time.Second
	DefaultMaxConns        = 10
)

// TokenizerModel is the model name understood by the local tokenizer.
const TokenizerModel = "gemini-2.5-flash"

// Config holds everything a Categorizer needs to reach the endpoint and
// interpret its answers.
//
// The Categorizer talks to the REST endpoint over net/http rather than
// through genai.Client, so that it can tell status failures from transport
// failures. Request and response bodies are still built from genai wire types
// (genai.Content, genai.Schema, genai.GenerateContentResponse).
type Config struct {
	// BaseURL is the API root; the model path is appended to it.
	BaseURL string

	// Model is the model identifier, e.g. "gemini-2.5-flash".
	Model string

	// APIKey is sent as the "key" query parameter.
	APIKey string

	// MaxContentChars bounds the document text sent to the model.
	MaxContentChars int

	// Timeout bounds a single attempt, including reading the response.
	Timeout time.Duration

	// MaxConns sizes the idle connection pool to the endpoint.
	MaxConns int

	// Retry bounds the attempts made per document.
	Retry docsearch.RetryPolicy

	// Taxonomy lists the permitted values and fallbacks.
	Taxonomy docsearch.Taxonomy

	// Policy decides whether off-taxonomy answers are kept.
	Policy docsearch.TaxonomyPolicy
}

// DefaultConfig returns a Config with every field at its documented default.
// APIKey is left empty.
func DefaultConfig() Config {
	return Config{
		BaseURL:         DefaultBaseURL,
		Model:           DefaultModel,
		MaxContentChars: DefaultMaxContentChars,
		Timeout:         DefaultTimeout,
		MaxConns:        DefaultMaxConns,
		Retry:           docsearch.DefaultRetryPolicy(),
		Taxonomy:        docsearch.DefaultTaxonomy(),
		Policy:          docsearch.PolicyPermissive,
	}
}

// Validate returns an error if the config cannot be used.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return docsearch.Errorf(docsearch.EINVALID, "gemini API key required")
	}
	if c.Model == "" {
		return docsearch.Errorf(docsearch.EINVALID, "gemini model required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil || c.BaseURL == "" {
		return docsearch.Errorf(docsearch.EINVALID, "invalid gemini base URL %q", c.BaseURL)
	}
	if c.MaxContentChars <= 0 {
		return docsearch.Errorf(docsearch.EINVALID, "max content chars must be positive")
	}
	if c.Retry.MaxAttempts <= 0 {
		return docsearch.Errorf(docsearch.EINVALID, "retry attempts must be positive")
	}
	switch c.Policy {
	case docsearch.PolicyPermissive, docsearch.PolicyStrict:
	default:
		return docsearch.Errorf(docsearch.EINVALID, "unknown taxonomy policy %q", c.Policy)
	}
	return c.Taxonomy.Validate()
}

// Endpoint returns the generateContent URL including the API key.
func (c Config) Endpoint() string {
	q := url.Values{}
	q.Set("key", c.APIKey)
	return strings.TrimSuffix(c.BaseURL, "/") + "/models/" + url.PathEscape(c.Model) + ":generateContent?" + q.Encode()
}

// withDefaults fills zero fields so a partially populated Config is usable.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.Model == "" {
		c.Model = def.Model
	}
	if c.MaxContentChars <= 0 {
		c.MaxContentChars = def.MaxContentChars
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.MaxConns <= 0 {
		c.MaxConns = def.MaxConns
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry = def.Retry
	}
	if c.Policy == "" {
		c.Policy = def.Policy
	}
	if len(c.Taxonomy.Topics) == 0 && len(c.Taxonomy.Projects) == 0 && len(c.Taxonomy.Teams) == 0 {
		c.Taxonomy = def.Taxonomy
	}
	return c
}

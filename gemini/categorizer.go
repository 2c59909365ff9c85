package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/docsearch"
	"google.golang.org/genai"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// Ensure Categorizer implements docsearch.Categorizer at compile time.
var _ docsearch.Categorizer = (*Categorizer)(nil)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Categorizer implements docsearch.Categorizer using the Gemini
// generateContent endpoint with a JSON response schema.
type Categorizer struct {
	config Config
	client *http.Client
	logger *slog.Logger
	sleep  SleepFunc
}

// Option configures a Categorizer.
type Option func(*Categorizer)

// WithHTTPClient sets the HTTP client used for inference calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Categorizer) {
		c.client = client
	}
}

// WithLogger sets the logger receiving retry and failure diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Categorizer) {
		c.logger = logger
	}
}

// WithSleep replaces the backoff wait. Tests use it to observe delays.
func WithSleep(sleep SleepFunc) Option {
	return func(c *Categorizer) {
		c.sleep = sleep
	}
}

// NewCategorizer creates a new Categorizer. Zero fields of config take their
// defaults; see DefaultConfig.
func NewCategorizer(config Config, opts ...Option) *Categorizer {
	c := &Categorizer{
		config: config.withDefaults(),
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.MaxIdleConnsPerHost = c.config.MaxConns
		c.client = &http.Client{Transport: transport}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Config returns the effective configuration.
func (c *Categorizer) Config() Config {
	return c.config
}

// Categorize classifies content. Only the first MaxContentChars characters
// are sent. Transport failures are retried with backoff; endpoint errors and
// malformed answers end the call. Every failure yields the taxonomy default.
func (c *Categorizer) Categorize(ctx context.Context, content string) docsearch.Categorization {
	tax := c.config.Taxonomy
	snippet := Truncate(content, c.config.MaxContentChars)

	body, err := json.Marshal(BuildRequest(tax, snippet))
	if err != nil {
		c.logger.Error("categorize: encode request", "err", err)
		return tax.Default()
	}

	for attempt := 0; ; attempt++ {
		result, err := c.attempt(ctx, body)
		if err == nil {
			c.logger.Debug("categorize",
				"attempt", attempt+1,
				"topic", result.Topic,
				"project", result.Project,
				"team", result.Team,
			)
			return tax.Apply(result, c.config.Policy)
		}

		kind := FailureKindOf(err)
		delay, retry := c.config.Retry.Next(attempt, kind)
		if !retry || ctx.Err() != nil {
			c.logger.Error("categorize failed, using default",
				"attempts", attempt+1,
				"kind", kind.String(),
				"err", err,
			)
			return tax.Default()
		}

		c.logger.Warn("categorize attempt failed, retrying",
			"attempt", attempt+1,
			"kind", kind.String(),
			"delay", delay,
			"err", err,
		)
		if err := c.sleep(ctx, delay); err != nil {
			c.logger.Error("categorize canceled, using default",
				"attempts", attempt+1,
				"err", err,
			)
			return tax.Default()
		}
	}
}

// attempt performs one inference call with the encoded request body.
func (c *Categorizer) attempt(ctx context.Context, body []byte) (docsearch.Categorization, error) {
	if err := ctx.Err(); err != nil {
		return docsearch.Categorization{}, &TransportError{Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return docsearch.Categorization{}, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// Keep the API key out of logged errors.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL, _, _ = strings.Cut(uerr.URL, "?")
		}
		return docsearch.Categorization{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return docsearch.Categorization{}, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return docsearch.Categorization{}, newEndpointError(resp.StatusCode, resp.Status, data)
	}

	var out genai.GenerateContentResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return docsearch.Categorization{}, &TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}

	text, err := GeneratedText(&out)
	if err != nil {
		return docsearch.Categorization{}, err
	}

	return ParseCategorization(text)
}

// GeneratedText returns the text of the first part of the first candidate.
func GeneratedText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", &MalformedResponseError{Reason: "no candidates"}
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 || cand.Content.Parts[0] == nil {
		return "", &MalformedResponseError{Reason: fmt.Sprintf("candidate has no content (finish reason %q)", cand.FinishReason)}
	}
	text := cand.Content.Parts[0].Text
	if text == "" {
		return "", &MalformedResponseError{Reason: "generated text is empty"}
	}
	return text, nil
}

// ParseCategorization decodes the generated text as a JSON object with
// string fields topic, project and team. Missing fields are left empty.
func ParseCategorization(text string) (docsearch.Categorization, error) {
	var c docsearch.Categorization
	if err := json.Unmarshal([]byte(text), &c); err != nil {
		return docsearch.Categorization{}, &MalformedResponseError{Text: text, Reason: "generated text is not a categorization object", Err: err}
	}
	return c, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

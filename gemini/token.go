package gemini

import (
	"context"

	"github.com/fwojciec/docsearch"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ docsearch.TokenCounter = (*TokenCounter)(nil)

// TokenCounter reports how many Gemini tokens an extracted document would
// cost. The add command sums it over a batch for its summary line. Counting
// runs offline with the local tokenizer, so it never spends API quota and
// works without an API key.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a TokenCounter for model. Only models known to the
// local tokenizer are accepted; TokenizerModel is the one used by the CLI.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the tokens of text sent as a single user turn, the way
// document text reaches the model. Empty text counts as zero.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, "user"),
	}

	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}

package mock

import "github.com/fwojciec/docsearch"

var _ docsearch.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docsearch.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docsearch.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docsearch.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ docsearch.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of docsearch.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(name string, data []byte) (string, error)
}

func (e *TextExtractor) ExtractText(name string, data []byte) (string, error) {
	return e.ExtractTextFn(name, data)
}

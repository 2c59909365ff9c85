// Package pdf extracts the text layer of PDF uploads with ledongthuc/pdf.
package pdf

import (
	"bytes"
	"strings"

	"github.com/fwojciec/docsearch"
	"github.com/ledongthuc/pdf"
)

// Ensure Extractor implements docsearch.TextExtractor at compile time.
var _ docsearch.TextExtractor = (*Extractor)(nil)

// Extractor returns the text of PDF files, one block per page. Scanned
// pages without a text layer yield no text.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the text of every page that has any, separated by a
// blank line. Unreadable or encrypted files return EINVALID.
func (e *Extractor) ExtractText(name string, data []byte) (text string, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", docsearch.Errorf(docsearch.EINVALID, "%s is not a readable PDF: %v", name, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", docsearch.Errorf(docsearch.EINVALID, "%s is not a readable PDF: %v", name, err)
	}

	fonts := make(map[string]*pdf.Font)
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, f := range p.Fonts() {
			if _, ok := fonts[f]; !ok {
				font := p.Font(f)
				fonts[f] = &font
			}
		}
		s, err := p.GetPlainText(fonts)
		if err != nil {
			return "", docsearch.Errorf(docsearch.EINVALID, "%s: page %d: %v", name, i, err)
		}
		if s = strings.TrimSpace(s); s != "" {
			pages = append(pages, s)
		}
	}

	return strings.Join(pages, "\n\n"), nil
}

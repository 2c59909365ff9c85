// Package goquery provides the last-resort HTML extractor: the document body
// with chrome elements removed, selected with goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsearch"
)

// Ensure Extractor implements docsearch.Extractor at compile time.
var _ docsearch.Extractor = (*Extractor)(nil)

// boilerplate lists elements that never carry document text.
const boilerplate = "script, style, noscript, template, iframe, svg, nav, header, footer, aside, form, [role=navigation], [aria-hidden=true]"

// Extractor returns the body of an HTML document without boilerplate
// elements. Unlike content-scoring extractors it never drops text, so short
// or unusual documents still yield content.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses rawHTML and returns the cleaned body. The title comes from
// the title element, falling back to the first h1.
func (e *Extractor) Extract(rawHTML string) (*docsearch.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docsearch.Errorf(docsearch.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "failed to parse HTML: %v", err)
	}

	title := collapseSpace(doc.Find("title").First().Text())
	if title == "" {
		title = collapseSpace(doc.Find("h1").First().Text())
	}

	body := doc.Find("body").First()
	body.Find(boilerplate).Remove()

	var contentHTML string
	if collapseSpace(body.Text()) != "" {
		contentHTML, err = body.Html()
		if err != nil {
			return nil, err
		}
	}

	return &docsearch.ExtractResult{
		Title:       title,
		ContentHTML: strings.TrimSpace(contentHTML),
	}, nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

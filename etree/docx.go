// Package etree extracts text from Office Open XML (.docx) uploads by
// reading the document part with etree.
package etree

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/docsearch"
)

// Ensure DocxExtractor implements docsearch.TextExtractor at compile time.
var _ docsearch.TextExtractor = (*DocxExtractor)(nil)

// documentPart is the main document part of a WordprocessingML package.
const documentPart = "word/document.xml"

// maxPartSize bounds the uncompressed size of the document part.
const maxPartSize = 64 << 20

// wordNamespace is the WordprocessingML main namespace.
const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// DocxExtractor returns the paragraph text of .docx files.
type DocxExtractor struct{}

// NewDocxExtractor creates a new DocxExtractor.
func NewDocxExtractor() *DocxExtractor {
	return &DocxExtractor{}
}

// ExtractText returns one line per paragraph of the document body. Tabs are
// kept, line breaks become spaces and empty paragraphs are dropped.
func (e *DocxExtractor) ExtractText(name string, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", docsearch.Errorf(docsearch.EINVALID, "%s is not a valid .docx file: %v", name, err)
	}

	part, err := readPart(zr, documentPart)
	if err != nil {
		return "", err
	}
	if part == nil {
		return "", docsearch.Errorf(docsearch.EINVALID, "%s has no %s", name, documentPart)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(part); err != nil {
		return "", docsearch.Errorf(docsearch.EINVALID, "%s: malformed document XML: %v", name, err)
	}
	root := doc.Root()
	if root == nil {
		return "", docsearch.Errorf(docsearch.EINVALID, "%s: empty document XML", name)
	}

	var lines []string
	walk(root, func(el *etree.Element) bool {
		if !isWord(el, "p") {
			return true
		}
		var b strings.Builder
		paragraphText(el, &b)
		if line := strings.TrimSpace(b.String()); line != "" {
			lines = append(lines, line)
		}
		return false
	})

	return strings.Join(lines, "\n"), nil
}

func readPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, docsearch.Errorf(docsearch.EINVALID, "open %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(io.LimitReader(rc, maxPartSize+1))
		if err != nil {
			return nil, docsearch.Errorf(docsearch.EINVALID, "read %s: %v", name, err)
		}
		if len(data) > maxPartSize {
			return nil, docsearch.Errorf(docsearch.EINVALID, "%s exceeds %d bytes", name, maxPartSize)
		}
		return data, nil
	}
	return nil, nil
}

// walk visits el and its descendants depth first. Children are skipped when
// fn returns false.
func walk(el *etree.Element, fn func(*etree.Element) bool) {
	if !fn(el) {
		return
	}
	for _, child := range el.ChildElements() {
		walk(child, fn)
	}
}

// paragraphText appends the runs of a paragraph, including runs nested in
// hyperlinks and content controls.
func paragraphText(p *etree.Element, b *strings.Builder) {
	walk(p, func(el *etree.Element) bool {
		switch {
		case isWord(el, "t"):
			b.WriteString(el.Text())
		case isWord(el, "tab"):
			b.WriteByte('\t')
		case isWord(el, "br"), isWord(el, "cr"):
			b.WriteByte(' ')
		case isWord(el, "p") && el != p:
			// Nested paragraphs (text boxes) are separated by a space.
			b.WriteByte(' ')
		}
		return true
	})
}

// isWord reports whether el is the WordprocessingML element local. Documents
// normally bind the namespace to "w", but any prefix is accepted.
func isWord(el *etree.Element, local string) bool {
	if el.Tag != local {
		return false
	}
	return el.Space == "w" || el.NamespaceURI() == wordNamespace
}

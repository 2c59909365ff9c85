package ingest

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/docsearch"
)

// Ensure FileExtractor implements docsearch.TextExtractor at compile time.
var _ docsearch.TextExtractor = (*FileExtractor)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileExtractor selects a text extraction strategy by file extension.
type FileExtractor struct {
	// HTML extractors are tried in order until one yields content that
	// converts to non-empty Markdown.
	HTML      []docsearch.Extractor
	Converter docsearch.Converter

	// Docx extracts Word documents.
	Docx docsearch.TextExtractor

	// PDF extracts the text layer of PDF documents.
	PDF docsearch.TextExtractor
}

// ExtractText returns the text of the file.
func (e *FileExtractor) ExtractText(name string, data []byte) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".txt", ".md", ".markdown":
		return plainText(name, data)
	case ".html", ".htm":
		return e.html(name, data)
	case ".docx":
		if e.Docx == nil {
			return "", docsearch.Errorf(docsearch.ENOTIMPLEMENTED, "no extractor configured for %s files", ext)
		}
		return e.Docx.ExtractText(name, data)
	case ".pdf":
		if e.PDF == nil {
			return "", docsearch.Errorf(docsearch.ENOTIMPLEMENTED, "no extractor configured for %s files", ext)
		}
		return e.PDF.ExtractText(name, data)
	case "":
		return "", docsearch.Errorf(docsearch.ENOTIMPLEMENTED, "cannot determine the type of %s without an extension", name)
	default:
		return "", docsearch.Errorf(docsearch.ENOTIMPLEMENTED, "unsupported file type %s: %s", ext, name)
	}
}

// plainText decodes UTF-8 text, dropping a byte order mark and normalizing
// line endings.
func plainText(name string, data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", docsearch.Errorf(docsearch.EINVALID, "%s is not valid UTF-8 text", name)
	}
	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n"), nil
}

func (e *FileExtractor) html(name string, data []byte) (string, error) {
	if e.Converter == nil || len(e.HTML) == 0 {
		return "", docsearch.Errorf(docsearch.ENOTIMPLEMENTED, "no extractor configured for HTML files")
	}

	raw := string(data)
	var lastErr error
	for _, ex := range e.HTML {
		res, err := ex.Extract(raw)
		if err != nil {
			lastErr = err
			continue
		}
		if strings.TrimSpace(res.ContentHTML) == "" {
			continue
		}
		md, err := e.Converter.Convert(res.ContentHTML)
		if err != nil {
			lastErr = err
			continue
		}
		if strings.TrimSpace(md) != "" {
			return md, nil
		}
	}

	if lastErr != nil && docsearch.ErrorCode(lastErr) == docsearch.EINVALID {
		return "", lastErr
	}
	return "", docsearch.Errorf(docsearch.EINVALID, "no readable content in %s", name)
}

// Package fs provides local file storage for uploads and markdown export of
// indexed documents.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/fwojciec/docsearch"
)

// DocumentPath returns the relative export path of a document: a directory
// per topic and a file named after the stored file key.
// Example: topic "Budget & Finance", key 1700000000000_plan.docx →
// budget-finance/1700000000000_plan.md
func DocumentPath(doc *docsearch.Document) string {
	dir := Slug(doc.Topic)
	if dir == "" {
		dir = "uncategorized"
	}
	stem := doc.FileKey
	if stem == "" {
		stem = doc.ID
	}
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	return filepath.Join(dir, stem+".md")
}

// Slug lowercases s and joins its letter and digit runs with hyphens.
func Slug(s string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			hyphen = false
			continue
		}
		hyphen = true
	}
	return b.String()
}

// FormatDocument formats a document with YAML frontmatter.
func FormatDocument(doc *docsearch.Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	writeField(&b, "id", doc.ID)
	writeField(&b, "title", doc.Title)
	writeField(&b, "file", doc.FileURL)
	writeField(&b, "topic", doc.Topic)
	writeField(&b, "project", doc.Project)
	writeField(&b, "team", doc.Team)
	writeField(&b, "uploaded", doc.UploadedAt.Format("2006-01-02"))
	b.WriteString("---\n\n")
	b.WriteString(doc.Content)
	if !strings.HasSuffix(doc.Content, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

func writeField(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(strconv.Quote(value))
	b.WriteString("\n")
}

// Ensure Writer implements docsearch.DocumentWriter at compile time.
var _ docsearch.DocumentWriter = (*Writer)(nil)

// Writer writes documents as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteDocument writes a document to disk as a markdown file and returns
// the path written.
func (w *Writer) WriteDocument(ctx context.Context, doc *docsearch.Document) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, DocumentPath(doc))

	// Create parent directories
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	content := FormatDocument(doc)
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}

package docsearch

import (
	"fmt"
	"strings"
)

// FormatDocument formats a document header followed by its content.
func FormatDocument(doc *Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	fmt.Fprintf(&b, "ID:       %s\n", doc.ID)
	fmt.Fprintf(&b, "File:     %s (%s, %d bytes)\n", doc.FileName, doc.ContentType, doc.Size)
	fmt.Fprintf(&b, "URL:      %s\n", doc.FileURL)
	fmt.Fprintf(&b, "Uploaded: %s\n", doc.UploadedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(FormatCategorization(doc.Categorization()))
	if doc.Content != "" {
		b.WriteString("\n")
		b.WriteString(doc.Content)
	}
	return b.String()
}

// FormatCategorization formats taxonomy fields one per line.
func FormatCategorization(c Categorization) string {
	return fmt.Sprintf("Topic:    %s\nProject:  %s\nTeam:     %s\n", c.Topic, c.Project, c.Team)
}

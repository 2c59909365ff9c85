package docsearch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Document represents an uploaded file with its extracted text and taxonomy fields.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	FileName    string    `json:"fileName"`
	FileKey     string    `json:"fileKey"`
	FileURL     string    `json:"fileUrl"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	Topic       string    `json:"topic"`
	Project     string    `json:"project"`
	Team        string    `json:"team"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Title == "" {
		return Errorf(EINVALID, "document title required")
	}
	if d.FileName == "" {
		return Errorf(EINVALID, "document file name required")
	}
	if d.FileURL == "" {
		return Errorf(EINVALID, "document file URL required")
	}
	return nil
}

// Categorization returns the taxonomy fields of the document.
func (d *Document) Categorization() Categorization {
	return Categorization{Topic: d.Topic, Project: d.Project, Team: d.Team}
}

// SetCategorization copies the taxonomy fields of c onto the document.
func (d *Document) SetCategorization(c Categorization) {
	d.Topic = c.Topic
	d.Project = c.Project
	d.Team = c.Team
}

// DocumentService represents a service for managing documents.
type DocumentService interface {
	// CreateDocument creates a new document.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter, newest first.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// FindContentHashes returns the content hash of every stored document.
	FindContentHashes(ctx context.Context) ([]string, error)

	// DeleteDocument permanently removes a document from the index.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentWriter exports documents outside the index.
type DocumentWriter interface {
	// WriteDocument writes doc and returns where it was written.
	WriteDocument(ctx context.Context, doc *Document) (string, error)
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID          *string `json:"id"`
	Topic       *string `json:"topic"`
	Project     *string `json:"project"`
	Team        *string `json:"team"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ContentTypeFor returns the MIME type stored for a file name.
func ContentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".md", ".markdown":
		return "text/markdown; charset=utf-8"
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// TitleFromFileName derives a display title from a file name.
// Example: reports/q4_review.docx → q4_review
func TitleFromFileName(name string) string {
	base := filepath.Base(name)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	if title == "" || title == "." {
		return base
	}
	return title
}

// HashContent returns the hex xxHash of content. Documents with equal
// extracted text share a hash.
func HashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

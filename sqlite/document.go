package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/docsearch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docsearch.DocumentService = (*DocumentService)(nil)

const documentColumns = `id, title, file_name, file_key, file_url, content_type, size,
	content, content_hash, topic, project, team, uploaded_at`

// DocumentService implements docsearch.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// CreateDocument creates a new document. ID, ContentHash and UploadedAt are
// assigned here.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *docsearch.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.UploadedAt = time.Now().UTC().Truncate(time.Second)
	doc.ContentHash = docsearch.HashContent(doc.Content)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Title, doc.FileName, doc.FileKey, doc.FileURL, doc.ContentType, doc.Size,
		doc.Content, doc.ContentHash, doc.Topic, doc.Project, doc.Team,
		doc.UploadedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*docsearch.Document, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, docsearch.Errorf(docsearch.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter, newest first.
func (s *DocumentService) FindDocuments(ctx context.Context, filter docsearch.DocumentFilter) ([]*docsearch.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}
	appendTaxonomyFilter(&query, &args, "", filter.Topic, filter.Project, filter.Team)

	query.WriteString(" ORDER BY uploaded_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*docsearch.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// FindContentHashes returns the distinct content hashes of stored documents.
func (s *DocumentService) FindContentHashes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT content_hash FROM documents WHERE content_hash != ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		hashes = append(hashes, h)
	}
	return hashes, rows.Err()
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return docsearch.Errorf(docsearch.ENOTFOUND, "document not found")
	}

	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner, extra ...any) (*docsearch.Document, error) {
	var doc docsearch.Document
	var uploadedAt string

	dest := []any{&doc.ID, &doc.Title, &doc.FileName, &doc.FileKey, &doc.FileURL, &doc.ContentType,
		&doc.Size, &doc.Content, &doc.ContentHash, &doc.Topic, &doc.Project, &doc.Team, &uploadedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	var err error
	doc.UploadedAt, err = parseRFC3339(uploadedAt, "uploaded_at")
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// appendTaxonomyFilter restricts a query to documents with the given
// taxonomy values. prefix qualifies column names, e.g. "d.".
func appendTaxonomyFilter(query *strings.Builder, args *[]any, prefix string, topic, project, team *string) {
	if topic != nil {
		query.WriteString(" AND " + prefix + "topic = ?")
		*args = append(*args, *topic)
	}
	if project != nil {
		query.WriteString(" AND " + prefix + "project = ?")
		*args = append(*args, *project)
	}
	if team != nil {
		query.WriteString(" AND " + prefix + "team = ?")
		*args = append(*args, *team)
	}
}

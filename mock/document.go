package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var _ docsearch.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of docsearch.DocumentService.
type DocumentService struct {
	CreateDocumentFn    func(ctx context.Context, doc *docsearch.Document) error
	FindDocumentByIDFn  func(ctx context.Context, id string) (*docsearch.Document, error)
	FindDocumentsFn     func(ctx context.Context, filter docsearch.DocumentFilter) ([]*docsearch.Document, error)
	FindContentHashesFn func(ctx context.Context) ([]string, error)
	DeleteDocumentFn    func(ctx context.Context, id string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *docsearch.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*docsearch.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter docsearch.DocumentFilter) ([]*docsearch.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) FindContentHashes(ctx context.Context) ([]string, error) {
	return s.FindContentHashesFn(ctx)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

var _ docsearch.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of docsearch.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, doc *docsearch.Document) (string, error)
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, doc *docsearch.Document) (string, error) {
	return w.WriteDocumentFn(ctx, doc)
}

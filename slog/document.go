package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure LoggingDocumentService implements docsearch.DocumentService.
var _ docsearch.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService and logs writes.
// Reads are delegated without logging.
type LoggingDocumentService struct {
	next   docsearch.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next docsearch.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

// CreateDocument delegates to the wrapped service and logs the new document.
func (s *LoggingDocumentService) CreateDocument(ctx context.Context, doc *docsearch.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create document",
			"id", doc.ID,
			"title", doc.Title,
			"hash", doc.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateDocument(ctx, doc)
}

func (s *LoggingDocumentService) FindDocumentByID(ctx context.Context, id string) (*docsearch.Document, error) {
	return s.next.FindDocumentByID(ctx, id)
}

func (s *LoggingDocumentService) FindDocuments(ctx context.Context, filter docsearch.DocumentFilter) ([]*docsearch.Document, error) {
	return s.next.FindDocuments(ctx, filter)
}

func (s *LoggingDocumentService) FindContentHashes(ctx context.Context) ([]string, error) {
	return s.next.FindContentHashes(ctx)
}

// DeleteDocument delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) DeleteDocument(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete document",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteDocument(ctx, id)
}

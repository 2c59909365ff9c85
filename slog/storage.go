package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure LoggingFileStorage implements docsearch.FileStorage.
var _ docsearch.FileStorage = (*LoggingFileStorage)(nil)

// LoggingFileStorage wraps a FileStorage with logging.
type LoggingFileStorage struct {
	next   docsearch.FileStorage
	logger *slog.Logger
}

// NewLoggingFileStorage creates a new LoggingFileStorage.
func NewLoggingFileStorage(next docsearch.FileStorage, logger *slog.Logger) *LoggingFileStorage {
	return &LoggingFileStorage{next: next, logger: logger}
}

// Store delegates to the wrapped storage and logs the written key.
func (s *LoggingFileStorage) Store(ctx context.Context, name string, data []byte) (file *docsearch.StoredFile, err error) {
	defer func(begin time.Time) {
		var key string
		if file != nil {
			key = file.Key
		}
		s.logger.Info("store file",
			"name", name,
			"key", key,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Store(ctx, name, data)
}

// Delete delegates to the wrapped storage and logs the operation.
func (s *LoggingFileStorage) Delete(ctx context.Context, key string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete file",
			"key", key,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Delete(ctx, key)
}

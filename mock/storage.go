package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var _ docsearch.FileStorage = (*FileStorage)(nil)

// FileStorage is a mock implementation of docsearch.FileStorage.
type FileStorage struct {
	StoreFn  func(ctx context.Context, name string, data []byte) (*docsearch.StoredFile, error)
	DeleteFn func(ctx context.Context, key string) error
}

func (s *FileStorage) Store(ctx context.Context, name string, data []byte) (*docsearch.StoredFile, error) {
	return s.StoreFn(ctx, name, data)
}

func (s *FileStorage) Delete(ctx context.Context, key string) error {
	return s.DeleteFn(ctx, key)
}

var _ docsearch.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of docsearch.RateLimiter.
type RateLimiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *RateLimiter) Wait(ctx context.Context) error {
	return l.WaitFn(ctx)
}

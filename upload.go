package docsearch

import (
	"context"
	"path/filepath"
)

// Upload is a file submitted for ingestion.
type Upload struct {
	Name  string
	Title string
	Data  []byte
}

// Validate returns an error if the upload cannot be ingested.
func (u *Upload) Validate() error {
	if u.Name == "" {
		return Errorf(EINVALID, "upload file name required")
	}
	if base := filepath.Base(u.Name); base == "." || base == ".." || base == string(filepath.Separator) {
		return Errorf(EINVALID, "upload file name %q is not a file", u.Name)
	}
	if len(u.Data) == 0 {
		return Errorf(EINVALID, "upload %q is empty", u.Name)
	}
	return nil
}

// RateLimiter paces outbound inference calls.
type RateLimiter interface {
	// Wait blocks until a call is allowed or ctx is done.
	Wait(ctx context.Context) error
}

package docsearch

import "context"

// StoredFile describes a file written to object storage.
type StoredFile struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// FileStorage persists original uploads and hands out public URLs.
type FileStorage interface {
	// Store writes data under a unique key derived from name.
	// Existing files are never replaced; a taken key is disambiguated.
	// Returns EINVALID for empty data or unusable names and ECONFLICT if no
	// free key can be found.
	Store(ctx context.Context, name string, data []byte) (*StoredFile, error)

	// Delete removes a stored file.
	// Returns ENOTFOUND if the key does not exist.
	Delete(ctx context.Context, key string) error
}

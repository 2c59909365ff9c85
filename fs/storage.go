package fs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure Storage implements docsearch.FileStorage at compile time.
var _ docsearch.FileStorage = (*Storage)(nil)

// maxKeyAttempts bounds the keys tried for one file.
const maxKeyAttempts = 100

// Storage implements docsearch.FileStorage on a local directory.
// Files are written to a temporary name and linked into place, so a stored
// file is either complete or absent and an existing key is never replaced.
type Storage struct {
	dir       string
	publicURL string

	// Now returns the current time. Keys are prefixed with its Unix millis.
	Now func() time.Time
}

// NewStorage creates a Storage rooted at dir. If publicURL is set, file URLs
// are built from it; otherwise file:// URLs are returned.
func NewStorage(dir, publicURL string) *Storage {
	return &Storage{
		dir:       dir,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		Now:       time.Now,
	}
}

// Store writes data under the key "<unix millis>_<base name>". If another
// file already holds that key, "<unix millis>_<n>_<base name>" is used with
// the first free n.
func (s *Storage) Store(ctx context.Context, name string, data []byte) (*docsearch.StoredFile, error) {
	if len(data) == 0 {
		return nil, docsearch.Errorf(docsearch.EINVALID, "file %q is empty", name)
	}
	base, err := baseName(name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	key, err := s.link(tmp.Name(), s.Now().UnixMilli(), base)
	if err != nil {
		return nil, err
	}

	fileURL, err := s.URL(key)
	if err != nil {
		return nil, err
	}

	return &docsearch.StoredFile{
		Key:         key,
		URL:         fileURL,
		ContentType: docsearch.ContentTypeFor(base),
		Size:        int64(len(data)),
	}, nil
}

// link links tmp into place under the first free key for millis and base.
func (s *Storage) link(tmp string, millis int64, base string) (string, error) {
	for n := 0; n < maxKeyAttempts; n++ {
		key := fmt.Sprintf("%d_%s", millis, base)
		if n > 0 {
			key = fmt.Sprintf("%d_%d_%s", millis, n, base)
		}
		err := os.Link(tmp, s.path(key))
		if err == nil {
			return key, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
	}
	return "", docsearch.Errorf(docsearch.ECONFLICT, "no free key for %q after %d attempts", base, maxKeyAttempts)
}

// Delete removes the file stored under key.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := os.Remove(s.path(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return docsearch.Errorf(docsearch.ENOTFOUND, "file %q not found", key)
		}
		return err
	}
	return nil
}

// URL returns the public URL of key.
func (s *Storage) URL(key string) (string, error) {
	if s.publicURL != "" {
		return s.publicURL + "/" + url.PathEscape(key), nil
	}
	abs, err := filepath.Abs(s.path(key))
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

func (s *Storage) path(key string) string {
	return filepath.Join(s.dir, key)
}

// baseName returns the last element of name. Names that climb out of their
// directory or have no usable last element are rejected.
func baseName(name string) (string, error) {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' })
	for _, p := range parts {
		if p == ".." {
			return "", docsearch.Errorf(docsearch.EINVALID, "file name %q must not contain ..", name)
		}
	}
	if len(parts) == 0 || strings.HasSuffix(name, "/") || strings.HasSuffix(name, `\`) {
		return "", docsearch.Errorf(docsearch.EINVALID, "file name %q is not a file", name)
	}
	base := strings.TrimSpace(parts[len(parts)-1])
	if base == "" || base == "." {
		return "", docsearch.Errorf(docsearch.EINVALID, "file name %q is not a file", name)
	}
	return base, nil
}

func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return docsearch.Errorf(docsearch.EINVALID, "invalid file key %q", key)
	}
	return nil
}

// Package media stores uploaded post images.
package media

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// PostsDir is the media subdirectory holding post images
const PostsDir = "posts"

// URLPrefix is where the server exposes the media directory
const URLPrefix = "/media/"

// ErrUnsupportedType is returned for uploads that are not a known image format
var ErrUnsupportedType = errors.New("unsupported image type")

var imageTypes = []string{"image/gif", "image/jpeg", "image/png", "image/webp"}

// Store persists image bytes under relative paths
type Store interface {
	// Save stores data and returns the relative path it lives under
	Save(dir string, data []byte) (string, error)
	// Remove deletes a previously saved path
	Remove(rel string) error
}

// DetectImage sniffs data and returns its extension when it is an accepted
// image format
func DetectImage(data []byte) (string, error) {
	mtype := mimetype.Detect(data)
	for _, allowed := range imageTypes {
		if mtype.Is(allowed) {
			return mtype.Extension(), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
}

// URL returns the public address of a stored relative path
func URL(rel string) string {
	if rel == "" {
		return ""
	}
	return URLPrefix + rel
}

// FileStore writes images below a root directory on the local filesystem
type FileStore struct {
	root string
}

// NewFileStore creates a store rooted at root
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Root returns the directory the store writes to
func (s *FileStore) Root() string {
	return s.root
}

// Save writes data to dir/<uuid><ext> and returns that relative path
func (s *FileStore) Save(dir string, data []byte) (string, error) {
	ext, err := DetectImage(data)
	if err != nil {
		return "", err
	}

	rel := path.Join(dir, uuid.NewString()+ext)
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return rel, nil
}

// Remove deletes the file at rel. A missing file is not an error.
func (s *FileStore) Remove(rel string) error {
	full := filepath.Join(s.root, filepath.FromSlash(path.Clean("/" + rel)))
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore writes media to a local directory served by a static file route.
// It is the development backend; production deployments use S3Store.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore returns a disk-backed store rooted at dir, with URLs under baseURL.
func NewDiskStore(dir, baseURL string) *DiskStore {
	return &DiskStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Dir returns the directory files are written to.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Put writes the blob under dir/key and returns its URL.
func (s *DiskStore) Put(_ context.Context, key, _ string, content []byte) (string, error) {
	// Keys are generated internally (hash + extension); reject anything that
	// could escape the media directory.
	if strings.Contains(key, "/") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	path := filepath.Join(s.dir, key)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

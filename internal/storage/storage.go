// Package storage provides object storage backends for uploaded media.
// Both backends store opaque blobs under content-addressed keys and return a
// public URL; only that URL is persisted with a post or profile.
package storage

import (
	"context"
	"fmt"

	"ripple/internal/config"
)

// ObjectStore persists an uploaded blob and returns its public URL.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, content []byte) (string, error)
}

// New builds the object store selected by configuration.
func New(cfg *config.Config) (ObjectStore, error) {
	switch cfg.MediaBackend {
	case "s3":
		return NewS3Store(cfg)
	case "disk":
		return NewDiskStore(cfg.MediaDir, cfg.MediaBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.MediaBackend)
	}
}

package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"ripple/internal/config"
	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/storage"
)

const DefaultMediaMaxUploadMB = 5

// MediaService validates uploaded attachments and hands them to the
// configured object store.
type MediaService struct {
	store              storage.ObjectStore
	maxUploadSizeBytes int64
}

type UploadMediaInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

func NewMediaService(store storage.ObjectStore, cfg *config.Config) *MediaService {
	maxUploadMB := DefaultMediaMaxUploadMB
	if cfg != nil && cfg.MediaMaxUploadMB > 0 {
		maxUploadMB = cfg.MediaMaxUploadMB
	}
	return &MediaService{
		store:              store,
		maxUploadSizeBytes: int64(maxUploadMB) * 1024 * 1024,
	}
}

// Upload stores an attachment and returns its public URL and kind. Files are
// keyed by content hash, so re-uploading identical bytes is idempotent.
func (s *MediaService) Upload(ctx context.Context, in UploadMediaInput) (models.Media, error) {
	if len(in.Content) == 0 {
		return models.NoMedia, models.NewValidationError("Uploaded file is empty")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return models.NoMedia, models.NewValidationError(
			fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	contentType := in.ContentType
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}

	kind, ok := models.ResolveMediaKind(contentType)
	if !ok {
		return models.NoMedia, models.NewValidationError(
			fmt.Sprintf("Unsupported file type %q", contentType))
	}

	sum := sha256.Sum256(in.Content)
	key := hex.EncodeToString(sum[:]) + mediaExtension(in.Filename, contentType)

	url, err := s.store.Put(ctx, key, contentType, in.Content)
	if err != nil {
		return models.NoMedia, models.NewUpstreamError(err)
	}

	middleware.MediaUploads.WithLabelValues(string(kind)).Inc()

	return models.Media{Kind: kind, URL: url}, nil
}

// mediaExtension picks a file extension, preferring the original filename's
// over one derived from the content type.
func mediaExtension(filename, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

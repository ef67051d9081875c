package models

// MediaKind classifies the media attached to a post. It is resolved exactly
// once at creation time from the upload's content type and never changes
// afterwards.
type MediaKind string

const (
	MediaNone  MediaKind = "none"
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// allowedMediaTypes maps accepted upload MIME types to their media kind.
var allowedMediaTypes = map[string]MediaKind{
	"image/jpeg": MediaImage,
	"image/jpg":  MediaImage,
	"image/png":  MediaImage,
	"image/webp": MediaImage,
	"image/gif":  MediaImage,
	"video/mp4":  MediaVideo,
}

// ResolveMediaKind returns the media kind for an upload content type, or
// (MediaNone, false) when the type is not on the allow-list.
func ResolveMediaKind(contentType string) (MediaKind, bool) {
	kind, ok := allowedMediaTypes[contentType]
	if !ok {
		return MediaNone, false
	}
	return kind, true
}

// Media is the resolved media reference stored on a post: either no media at
// all, or a kind plus the URL returned by the object store.
type Media struct {
	Kind MediaKind
	URL  string
}

// NoMedia is the zero media reference for text-only posts.
var NoMedia = Media{Kind: MediaNone}

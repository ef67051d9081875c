package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveMediaKind(t *testing.T) {
	tests := []struct {
		contentType string
		kind        MediaKind
		ok          bool
	}{
		{"image/jpeg", MediaImage, true},
		{"image/jpg", MediaImage, true},
		{"image/png", MediaImage, true},
		{"image/webp", MediaImage, true},
		{"image/gif", MediaImage, true},
		{"video/mp4", MediaVideo, true},
		{"video/webm", MediaNone, false},
		{"image/svg+xml", MediaNone, false},
		{"application/pdf", MediaNone, false},
		{"text/html", MediaNone, false},
		{"", MediaNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			kind, ok := ResolveMediaKind(tt.contentType)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

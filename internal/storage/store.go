package storage

import (
	"context"
	"io"
)

// BlobStore persists uploaded media under a caller-chosen key and returns the
// servable URL for the stored object.
type BlobStore interface {
	Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// ContentTypeForExt maps a lowercased extension (with dot) to a media content
// type for storage backends that record one.
func ContentTypeForExt(ext string) string {
	switch ext {
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".ogg":
		return "video/ogg"
	default:
		return "application/octet-stream"
	}
}

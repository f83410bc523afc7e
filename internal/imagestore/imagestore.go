package imagestore

import (
	"context"
	"io"
)

// ImageStore holds listing images under opaque keys.
type ImageStore interface {
	Save(ctx context.Context, prefix, mimeType string, r io.Reader) (key string, err error)
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}

// Supported reports whether mimeType is an image format the stores accept.
func Supported(mimeType string) bool {
	_, ok := extensions[mimeType]
	return ok
}

// Extension returns the file extension for mimeType, including the dot.
func Extension(mimeType string) string {
	return extensions[mimeType]
}

// MimeType maps a file extension back to its image type, defaulting to JPEG.
func MimeType(ext string) string {
	for mt, e := range extensions {
		if e == ext {
			return mt
		}
	}
	return "image/jpeg"
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

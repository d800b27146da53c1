package storage

import (
	"context"
	"io"
)

// BlobStore holds uploaded exam media.
type BlobStore interface {
	// Put stores the blob and returns its canonical key.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	// Get returns the blob and its content type.
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	// URL returns a URL a browser can fetch the blob from.
	URL(ctx context.Context, key string) (string, error)
}

package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotConfigured is returned by handlers when no bucket is set up.
var ErrNotConfigured = errors.New("storage: not configured")

// FileStorage stores public objects such as trainer photos.
type FileStorage interface {
	// Put uploads body under key and returns the public URL of the object.
	Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

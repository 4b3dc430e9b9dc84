// Package blob abstracts where uploaded notice files live: a flat
// directory on local disk by default, or an S3-compatible bucket.
package blob

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrNotFound is returned when no blob exists under the given name.
	ErrNotFound = errors.New("blob not found")
	// ErrInvalidName is returned for names that would escape the store.
	ErrInvalidName = errors.New("invalid blob name")
)

// Store is the storage contract for notice blobs.
type Store interface {
	// Save writes the blob and returns the path it was stored under.
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	// Open returns a reader over the blob plus its content type.
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
	// Remove deletes the blob.
	Remove(ctx context.Context, name string) error
}

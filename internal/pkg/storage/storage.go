package storage

import (
	"context"
	"io"
)

// Storage abstracts where uploaded photo blobs live. Paths are relative and
// forward-slash separated; the backend decides how they map to real locations.
type Storage interface {
	// Save writes content at path, replacing any existing blob.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the blob at path for reading. The caller closes the stream.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the blob at path. Deleting a missing blob is not an error.
	Delete(ctx context.Context, path string) error
}

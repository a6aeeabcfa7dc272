package fsx

import (
	"context"
	"io"
)

// FileSystem stores uploaded files. Paths are slash-separated and relative to
// the backend's root.
type FileSystem interface {
	// Join builds a storage path from elements
	Join(elem ...string) string

	// WriteFile stores data at path, replacing any existing file
	WriteFile(ctx context.Context, path string, data []byte) error

	// WriteFileStream stores the contents of r at path
	WriteFileStream(ctx context.Context, path string, r io.Reader) error

	// ReadFile returns the contents stored at path
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// DeleteFile removes path. Removing a missing file is not an error.
	DeleteFile(ctx context.Context, path string) error

	// Exists reports whether path is stored
	Exists(ctx context.Context, path string) (bool, error)
}

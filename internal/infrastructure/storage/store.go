package storage

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrUnsafeFilename is returned when a filename survives
	// sanitization as empty or dots-only.
	ErrUnsafeFilename = errors.New("filename is unsafe or empty after sanitization")
)

// Store is the asset store the image service writes uploads through.
// Save overwrites an existing blob with the same name and returns the
// stored name. Remove and Save failures are storage errors, distinct
// from validation.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, name string) error
	PublicPath(name string) string
}

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// DiskStore writes assets under a local content root.
// The root is created on construction; blobs are flat files named by
// their sanitized filename.
type DiskStore struct {
	root   string
	prefix string
}

func NewDiskStore(root, publicPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create content root: %w", err)
	}
	return &DiskStore{root: root, prefix: publicPrefix}, nil
}

// Save writes the blob, overwriting any existing file with the same
// name.
func (s *DiskStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	dst := filepath.Join(s.root, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", name, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to write file %s: %w", name, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file %s: %w", name, err)
	}

	return name, nil
}

// Remove deletes a blob. A missing file is not an error; cleanup is
// allowed to run more than once for the same name.
func (s *DiskStore) Remove(ctx context.Context, name string) error {
	err := os.Remove(filepath.Join(s.root, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file %s: %w", name, err)
	}
	return nil
}

// PublicPath projects a stored filename onto its URL path.
func (s *DiskStore) PublicPath(name string) string {
	return path.Join(s.prefix, name)
}

// Root exposes the content root so the router can serve it statically.
func (s *DiskStore) Root() string {
	return s.root
}

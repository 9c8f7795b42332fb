package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"gallery-backend/internal/config"
)

// MinIOStore is the object-storage driver for the asset store.
// Same contract as DiskStore, blobs live in a bucket instead of a
// directory.
type MinIOStore struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewMinIOStore(cfg config.MinIOConfig, publicPrefix string) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	// Create the bucket on first run.
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOStore{
		client: client,
		bucket: cfg.Bucket,
		prefix: publicPrefix,
	}, nil
}

// Save streams the blob into the bucket. PutObject with the same key
// overwrites, matching the disk driver.
func (s *MinIOStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		name,
		r,
		-1, // size unknown, stream it
		minio.PutObjectOptions{},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to minio: %w", name, err)
	}

	return name, nil
}

func (s *MinIOStore) Remove(ctx context.Context, name string) error {
	err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove object %s: %w", name, err)
	}
	return nil
}

func (s *MinIOStore) PublicPath(name string) string {
	return path.Join(s.prefix, name)
}

package cache

import (
	"context"
	"time"

	pkgcache "gallery-backend/pkg/cache"
)

// NoopCache satisfies the Cache interface when Redis is not
// configured. Every read is a miss, every write succeeds.
type NoopCache struct{}

func NewNoopCache() pkgcache.Cache {
	return &NoopCache{}
}

func (NoopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (NoopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (NoopCache) Delete(ctx context.Context, keys ...string) error {
	return nil
}

func (NoopCache) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}

func (NoopCache) Ping(ctx context.Context) error {
	return nil
}

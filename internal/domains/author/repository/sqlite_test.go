package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-backend/internal/domains/author/model"
	"gallery-backend/internal/infrastructure/cache"
	"gallery-backend/internal/infrastructure/database"
	pkgcache "gallery-backend/pkg/cache"
)

// memCache is a map-backed Cache so tests can observe hits and
// invalidation. TTLs are ignored.
type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memCache) DeletePattern(ctx context.Context, pattern string) error { return nil }

func (m *memCache) Ping(ctx context.Context) error { return nil }

var _ pkgcache.Cache = (*memCache)(nil)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db := database.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, db.Connect(context.Background()))
	t.Cleanup(func() { db.Close() })

	return db.DB
}

func newTestRepo(t *testing.T) RepositoryInterface {
	return NewSQLiteRepository(newTestDB(t), cache.NewNoopCache())
}

func TestAuthorRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Author{
		Name:    "mika",
		SNSUrls: []string{"https://example.com/mika"},
	})
	require.NoError(t, err)
	assert.Greater(t, created.ID, int64(0))
	assert.Equal(t, "mika", created.Name)
	assert.Equal(t, []string{"https://example.com/mika"}, created.SNSUrls)
	assert.False(t, created.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)
	assert.Equal(t, "mika", byID.Name)
	assert.Equal(t, []string{"https://example.com/mika"}, byID.SNSUrls)

	byName, err := repo.GetByName(ctx, "mika")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
}

func TestAuthorRepository_Create_NilURLsStoredEmpty(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Author{Name: "mika"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.SNSUrls)
	assert.Empty(t, got.SNSUrls)
}

func TestAuthorRepository_Create_DuplicateName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.Author{Name: "mika"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &model.Author{Name: "mika"})
	assert.ErrorIs(t, err, model.ErrDuplicateName)
}

func TestAuthorRepository_GetByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), 12345)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestAuthorRepository_GetByName_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByName(context.Background(), "nobody")
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestAuthorRepository_GetAll_OrderedByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"zoe", "adam", "mika"} {
		_, err := repo.Create(ctx, &model.Author{Name: name})
		require.NoError(t, err)
	}

	authors, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 3)
	assert.Equal(t, "zoe", authors[0].Name)
	assert.Equal(t, "adam", authors[1].Name)
	assert.Equal(t, "mika", authors[2].Name)
}

func TestAuthorRepository_GetAll_Empty(t *testing.T) {
	repo := newTestRepo(t)

	authors, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, authors)
	assert.Empty(t, authors)
}

func TestAuthorRepository_GetAll_ServesFromCache(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteRepository(db, newMemCache())
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.Author{Name: "mika"})
	require.NoError(t, err)

	authors, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 1)

	// A row inserted behind the repository's back stays invisible
	// while the cached list is live.
	_, err = db.ExecContext(ctx, `
        INSERT INTO authors (name, sns_urls, created_at, updated_at)
        VALUES ('zoe', '[]', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	authors, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, authors, 1)

	// A repository write invalidates the list.
	_, err = repo.Create(ctx, &model.Author{Name: "adam"})
	require.NoError(t, err)

	authors, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, authors, 3)
}

func TestAuthorRepository_Delete_InvalidatesListCache(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteRepository(db, newMemCache())
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Author{Name: "mika"})
	require.NoError(t, err)

	authors, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))

	authors, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestAuthorRepository_ExistsByName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	exists, err := repo.ExistsByName(ctx, "mika")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.Create(ctx, &model.Author{Name: "mika"})
	require.NoError(t, err)

	exists, err = repo.ExistsByName(ctx, "mika")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAuthorRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Author{Name: "mika"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), model.ErrAuthorNotFound)
}

func TestAuthorRepository_CountImages(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteRepository(db, cache.NewNoopCache())
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Author{Name: "mika"})
	require.NoError(t, err)

	count, err := repo.CountImages(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = db.ExecContext(ctx, `
        INSERT INTO images (author_id, main_image_path, tags, comments, created_at, updated_at)
        VALUES (?, 'main.png', '[]', 'thanks', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`,
		created.ID)
	require.NoError(t, err)

	count, err = repo.CountImages(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

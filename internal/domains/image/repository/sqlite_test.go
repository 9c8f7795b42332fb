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

	authormodel "gallery-backend/internal/domains/author/model"
	authorrepo "gallery-backend/internal/domains/author/repository"
	"gallery-backend/internal/domains/image/model"
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

type repoFixture struct {
	db     *sql.DB
	repo   RepositoryInterface
	author *authormodel.Author
}

func newFixture(t *testing.T) *repoFixture {
	t.Helper()

	sqliteDB := database.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, sqliteDB.Connect(context.Background()))
	t.Cleanup(func() { sqliteDB.Close() })

	noop := cache.NewNoopCache()
	author, err := authorrepo.NewSQLiteRepository(sqliteDB.DB, noop).
		Create(context.Background(), &authormodel.Author{
			Name:    "mika",
			SNSUrls: []string{"https://example.com/mika"},
		})
	require.NoError(t, err)

	return &repoFixture{
		db:     sqliteDB.DB,
		repo:   NewSQLiteRepository(sqliteDB.DB, noop),
		author: author,
	}
}

func sampleImage(authorID int64) *model.ImageData {
	return &model.ImageData{
		AuthorID:               authorID,
		MainImagePath:          "main.png",
		MainImageHasBackground: true,
		SubImages: []model.SubImage{
			{Filename: "a.png", HasBackground: false, Position: 0},
			{Filename: "b.png", HasBackground: true, Position: 1},
		},
		Tags:     []string{"cat", "dog"},
		Comments: "thanks!",
	}
}

func TestImageRepository_CreateAndGetByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.repo.Create(ctx, sampleImage(f.author.ID))
	require.NoError(t, err)
	assert.Greater(t, created.ID, int64(0))

	got, err := f.repo.GetByID(ctx, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "main.png", got.MainImagePath)
	assert.True(t, got.MainImageHasBackground)
	assert.Equal(t, []string{"cat", "dog"}, got.Tags)
	assert.Equal(t, "thanks!", got.Comments)

	require.Len(t, got.SubImages, 2)
	assert.Equal(t, "a.png", got.SubImages[0].Filename)
	assert.False(t, got.SubImages[0].HasBackground)
	assert.Equal(t, 0, got.SubImages[0].Position)
	assert.Equal(t, "b.png", got.SubImages[1].Filename)
	assert.True(t, got.SubImages[1].HasBackground)
	assert.Equal(t, 1, got.SubImages[1].Position)

	require.NotNil(t, got.Author)
	assert.Equal(t, "mika", got.Author.Name)
	assert.Equal(t, []string{"https://example.com/mika"}, got.Author.SNSUrls)
}

func TestImageRepository_GetByID_WithoutAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.repo.Create(ctx, sampleImage(f.author.ID))
	require.NoError(t, err)

	got, err := f.repo.GetByID(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Nil(t, got.Author)
	assert.Equal(t, f.author.ID, got.AuthorID)
}

func TestImageRepository_GetByID_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.repo.GetByID(context.Background(), 9999, true)
	assert.ErrorIs(t, err, model.ErrImageNotFound)
}

func TestImageRepository_GetAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.repo.Create(ctx, sampleImage(f.author.ID))
	require.NoError(t, err)

	second := sampleImage(f.author.ID)
	second.MainImagePath = "other.png"
	second.SubImages = nil
	_, err = f.repo.Create(ctx, second)
	require.NoError(t, err)

	images, err := f.repo.GetAll(ctx, true)
	require.NoError(t, err)
	require.Len(t, images, 2)

	assert.Equal(t, first.ID, images[0].ID)
	assert.Len(t, images[0].SubImages, 2)
	assert.Equal(t, "other.png", images[1].MainImagePath)
	assert.NotNil(t, images[1].SubImages)
	assert.Empty(t, images[1].SubImages)
	require.NotNil(t, images[0].Author)
	assert.Equal(t, "mika", images[0].Author.Name)
}

func TestImageRepository_GetAll_Empty(t *testing.T) {
	f := newFixture(t)

	images, err := f.repo.GetAll(context.Background(), true)
	require.NoError(t, err)
	assert.NotNil(t, images)
	assert.Empty(t, images)
}

func TestImageRepository_GetAll_ServesFromCache(t *testing.T) {
	f := newFixture(t)
	repo := NewSQLiteRepository(f.db, newMemCache())
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleImage(f.author.ID))
	require.NoError(t, err)

	images, err := repo.GetAll(ctx, true)
	require.NoError(t, err)
	require.Len(t, images, 1)

	// A row inserted behind the repository's back stays invisible
	// while the cached list is live.
	_, err = f.db.ExecContext(ctx, `
        INSERT INTO images (author_id, main_image_path, tags, comments, created_at, updated_at)
        VALUES (?, 'side.png', '[]', 'thanks', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`,
		f.author.ID)
	require.NoError(t, err)

	images, err = repo.GetAll(ctx, true)
	require.NoError(t, err)
	assert.Len(t, images, 1)

	// Only the joined variant is cached.
	images, err = repo.GetAll(ctx, false)
	require.NoError(t, err)
	assert.Len(t, images, 2)

	// A repository write invalidates the list.
	require.NoError(t, repo.Delete(ctx, created.ID))

	images, err = repo.GetAll(ctx, true)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "side.png", images[0].MainImagePath)
}

func TestImageRepository_Update_ReplacesSubImagesAndTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.repo.Create(ctx, sampleImage(f.author.ID))
	require.NoError(t, err)

	created.MainImagePath = "new-main.png"
	created.MainImageHasBackground = false
	created.Tags = []string{"bird"}
	created.Comments = "updated"
	created.SubImages = []model.SubImage{
		{Filename: "c.png", HasBackground: true, Position: 0},
	}

	require.NoError(t, f.repo.Update(ctx, created))

	got, err := f.repo.GetByID(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "new-main.png", got.MainImagePath)
	assert.False(t, got.MainImageHasBackground)
	assert.Equal(t, []string{"bird"}, got.Tags)
	assert.Equal(t, "updated", got.Comments)
	require.Len(t, got.SubImages, 1)
	assert.Equal(t, "c.png", got.SubImages[0].Filename)
	assert.True(t, got.SubImages[0].HasBackground)
}

func TestImageRepository_Update_NotFound(t *testing.T) {
	f := newFixture(t)

	missing := sampleImage(f.author.ID)
	missing.ID = 9999

	err := f.repo.Update(context.Background(), missing)
	assert.ErrorIs(t, err, model.ErrImageNotFound)
}

func TestImageRepository_Delete_CascadesSubImages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.repo.Create(ctx, sampleImage(f.author.ID))
	require.NoError(t, err)

	require.NoError(t, f.repo.Delete(ctx, created.ID))

	_, err = f.repo.GetByID(ctx, created.ID, false)
	assert.ErrorIs(t, err, model.ErrImageNotFound)

	var count int
	err = f.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sub_images WHERE image_id = ?`, created.ID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestImageRepository_Delete_NotFound(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.repo.Delete(context.Background(), 9999), model.ErrImageNotFound)
}

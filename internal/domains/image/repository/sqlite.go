package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	authormodel "gallery-backend/internal/domains/author/model"
	"gallery-backend/internal/domains/image/model"
	"gallery-backend/pkg/cache"
	"gallery-backend/pkg/database"
)

// sqliteRepository implements RepositoryInterface. Writes touching
// the sub_images table run in a transaction so a record and its
// ordered sub-images stay consistent.
type sqliteRepository struct {
	db    *sql.DB
	cache cache.Cache
}

// NewSQLiteRepository creates a new image repository instance.
func NewSQLiteRepository(db *sql.DB, cache cache.Cache) RepositoryInterface {
	return &sqliteRepository{
		db:    db,
		cache: cache,
	}
}

const (
	imageCacheKeyPrefix = "image:"
	imageListKey        = "images:list"
	cacheTTL            = 15 * time.Minute
)

const timeLayout = time.RFC3339Nano

// Create inserts the image row and its positional sub-image rows in
// one transaction.
func (r *sqliteRepository) Create(ctx context.Context, img *model.ImageData) (*model.ImageData, error) {
	tags, err := json.Marshal(emptyIfNil(img.Tags))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tags: %w", err)
	}

	now := time.Now().UTC()

	id, err := database.WithTransactionResult(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		res, err := tx.ExecContext(ctx, `
            INSERT INTO images (author_id, main_image_path, main_image_has_background, tags, comments, created_at, updated_at)
            VALUES (?, ?, ?, ?, ?, ?, ?)`,
			img.AuthorID, img.MainImagePath, img.MainImageHasBackground,
			string(tags), img.Comments, now.Format(timeLayout), now.Format(timeLayout),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert image: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to read image id: %w", err)
		}

		if err := insertSubImages(ctx, tx, id, img.SubImages); err != nil {
			return 0, err
		}

		return id, nil
	})
	if err != nil {
		return nil, err
	}

	created := *img
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	r.invalidateListCache(ctx)

	return &created, nil
}

// GetByID retrieves one record, with caching on the joined variant.
func (r *sqliteRepository) GetByID(ctx context.Context, id int64, withAuthor bool) (*model.ImageData, error) {
	cacheKey := fmt.Sprintf("%s%d", imageCacheKeyPrefix, id)
	if withAuthor {
		var cachedImg model.ImageData
		cached, err := r.cache.Get(ctx, cacheKey, &cachedImg)
		if err == nil && cached {
			return &cachedImg, nil
		}
	}

	row := r.db.QueryRowContext(ctx, `
        SELECT id, author_id, main_image_path, main_image_has_background, tags, comments, created_at, updated_at
        FROM images
        WHERE id = ?`, id)

	img, err := scanImage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to get image by id: %w", err)
	}

	if err := r.loadSubImages(ctx, img); err != nil {
		return nil, err
	}

	if withAuthor {
		if err := r.loadAuthor(ctx, img); err != nil {
			return nil, err
		}
		r.cache.Set(ctx, cacheKey, img, cacheTTL)
	}

	return img, nil
}

// GetAll returns every record ordered by id, sub-images in position
// order. Like GetByID, only the joined variant is cached; every write
// invalidates the list key.
func (r *sqliteRepository) GetAll(ctx context.Context, withAuthor bool) ([]model.ImageData, error) {
	if withAuthor {
		var cachedList []model.ImageData
		cached, err := r.cache.Get(ctx, imageListKey, &cachedList)
		if err == nil && cached {
			return cachedList, nil
		}
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT id, author_id, main_image_path, main_image_has_background, tags, comments, created_at, updated_at
        FROM images
        ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	images := make([]model.ImageData, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, *img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating images: %w", err)
	}

	for i := range images {
		if err := r.loadSubImages(ctx, &images[i]); err != nil {
			return nil, err
		}
		if withAuthor {
			if err := r.loadAuthor(ctx, &images[i]); err != nil {
				return nil, err
			}
		}
	}

	if withAuthor {
		r.cache.Set(ctx, imageListKey, images, cacheTTL)
	}

	return images, nil
}

// Update persists a fully merged record. The caller has already
// applied the partial-merge rules; tags and sub-images are replaced
// whole here.
func (r *sqliteRepository) Update(ctx context.Context, img *model.ImageData) error {
	tags, err := json.Marshal(emptyIfNil(img.Tags))
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	now := time.Now().UTC()

	err = database.WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
            UPDATE images
            SET author_id = ?,
                main_image_path = ?,
                main_image_has_background = ?,
                tags = ?,
                comments = ?,
                updated_at = ?
            WHERE id = ?`,
			img.AuthorID, img.MainImagePath, img.MainImageHasBackground,
			string(tags), img.Comments, now.Format(timeLayout), img.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update image: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if affected == 0 {
			return model.ErrImageNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM sub_images WHERE image_id = ?`, img.ID); err != nil {
			return fmt.Errorf("failed to clear sub images: %w", err)
		}

		return insertSubImages(ctx, tx, img.ID, img.SubImages)
	})
	if err != nil {
		return err
	}

	img.UpdatedAt = now

	r.invalidateImageCache(ctx, img.ID)

	return nil
}

// Delete removes the record; sub-image rows go with it via the FK
// cascade.
func (r *sqliteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return model.ErrImageNotFound
	}

	r.invalidateImageCache(ctx, id)

	return nil
}

// ========================================
// HELPERS
// ========================================

func insertSubImages(ctx context.Context, tx *sql.Tx, imageID int64, subs []model.SubImage) error {
	for i, s := range subs {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO sub_images (image_id, position, filename, has_background)
            VALUES (?, ?, ?, ?)`,
			imageID, i, s.Filename, s.HasBackground,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sub image %d: %w", i, err)
		}
	}
	return nil
}

func (r *sqliteRepository) loadSubImages(ctx context.Context, img *model.ImageData) error {
	rows, err := r.db.QueryContext(ctx, `
        SELECT filename, has_background, position
        FROM sub_images
        WHERE image_id = ?
        ORDER BY position ASC`, img.ID)
	if err != nil {
		return fmt.Errorf("failed to query sub images: %w", err)
	}
	defer rows.Close()

	subs := make([]model.SubImage, 0)
	for rows.Next() {
		var s model.SubImage
		if err := rows.Scan(&s.Filename, &s.HasBackground, &s.Position); err != nil {
			return fmt.Errorf("failed to scan sub image: %w", err)
		}
		subs = append(subs, s)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating sub images: %w", err)
	}

	img.SubImages = subs
	return nil
}

func (r *sqliteRepository) loadAuthor(ctx context.Context, img *model.ImageData) error {
	var (
		a         authormodel.Author
		urlsJSON  string
		createdAt string
		updatedAt string
	)

	err := r.db.QueryRowContext(ctx, `
        SELECT id, name, sns_urls, created_at, updated_at
        FROM authors
        WHERE id = ?`, img.AuthorID).
		Scan(&a.ID, &a.Name, &urlsJSON, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return authormodel.ErrAuthorNotFound
		}
		return fmt.Errorf("failed to load author: %w", err)
	}

	if err := json.Unmarshal([]byte(urlsJSON), &a.SNSUrls); err != nil {
		return fmt.Errorf("failed to unmarshal sns urls: %w", err)
	}
	if a.SNSUrls == nil {
		a.SNSUrls = []string{}
	}

	a.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	a.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)

	img.Author = &a
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanImage(s scanner) (*model.ImageData, error) {
	var (
		img       model.ImageData
		tagsJSON  string
		createdAt string
		updatedAt string
	)

	if err := s.Scan(
		&img.ID, &img.AuthorID, &img.MainImagePath, &img.MainImageHasBackground,
		&tagsJSON, &img.Comments, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tagsJSON), &img.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	if img.Tags == nil {
		img.Tags = []string{}
	}

	img.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	img.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)

	return &img, nil
}

func (r *sqliteRepository) invalidateImageCache(ctx context.Context, id int64) {
	r.cache.Delete(ctx, fmt.Sprintf("%s%d", imageCacheKeyPrefix, id))
	r.invalidateListCache(ctx)
}

func (r *sqliteRepository) invalidateListCache(ctx context.Context) {
	r.cache.Delete(ctx, imageListKey)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

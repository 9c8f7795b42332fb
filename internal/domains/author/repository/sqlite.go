package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gallery-backend/internal/domains/author/model"
	"gallery-backend/pkg/cache"
)

// sqliteRepository implements RepositoryInterface on the embedded
// database, with a cache-aside layer in front of point reads.
type sqliteRepository struct {
	db    *sql.DB
	cache cache.Cache
}

// NewSQLiteRepository creates a new author repository instance.
func NewSQLiteRepository(db *sql.DB, cache cache.Cache) RepositoryInterface {
	return &sqliteRepository{
		db:    db,
		cache: cache,
	}
}

// Cache key constants
const (
	authorCacheKeyPrefix = "author:"
	authorNameKeyPrefix  = "author:name:"
	authorListKey        = "authors:list"
	cacheTTL             = 15 * time.Minute
)

const timeLayout = time.RFC3339Nano

// Create inserts a new author. The name column is UNIQUE; a collision
// surfaces as ErrDuplicateName.
func (r *sqliteRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	urls, err := json.Marshal(emptyIfNil(a.SNSUrls))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sns urls: %w", err)
	}

	now := time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
        INSERT INTO authors (name, sns_urls, created_at, updated_at)
        VALUES (?, ?, ?, ?)`,
		a.Name, string(urls), now.Format(timeLayout), now.Format(timeLayout),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, model.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read author id: %w", err)
	}

	created := &model.Author{
		ID:        id,
		Name:      a.Name,
		SNSUrls:   emptyIfNil(a.SNSUrls),
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.invalidateListCache(ctx)

	return created, nil
}

// GetByID retrieves an author with caching.
func (r *sqliteRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	cacheKey := fmt.Sprintf("%s%d", authorCacheKeyPrefix, id)

	var a model.Author
	cached, err := r.cache.Get(ctx, cacheKey, &a)
	if err == nil && cached {
		return &a, nil
	}

	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, sns_urls, created_at, updated_at
        FROM authors
        WHERE id = ?`, id)

	author, err := scanAuthor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, author, cacheTTL)

	return author, nil
}

// GetByName retrieves an author by exact name with caching.
func (r *sqliteRepository) GetByName(ctx context.Context, name string) (*model.Author, error) {
	cacheKey := authorNameKeyPrefix + name

	var a model.Author
	cached, err := r.cache.Get(ctx, cacheKey, &a)
	if err == nil && cached {
		return &a, nil
	}

	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, sns_urls, created_at, updated_at
        FROM authors
        WHERE name = ?`, name)

	author, err := scanAuthor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by name: %w", err)
	}

	// Cache both by name and by id.
	r.cache.Set(ctx, cacheKey, author, cacheTTL)
	r.cache.Set(ctx, fmt.Sprintf("%s%d", authorCacheKeyPrefix, author.ID), author, cacheTTL)

	return author, nil
}

// GetAll returns every author ordered by id, with caching.
// Create and Delete invalidate the list key.
func (r *sqliteRepository) GetAll(ctx context.Context) ([]model.Author, error) {
	var cachedList []model.Author
	cached, err := r.cache.Get(ctx, authorListKey, &cachedList)
	if err == nil && cached {
		return cachedList, nil
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, sns_urls, created_at, updated_at
        FROM authors
        ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	r.cache.Set(ctx, authorListKey, authors, cacheTTL)

	return authors, nil
}

// ExistsByName checks if the name is taken (lightweight query).
func (r *sqliteRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM authors WHERE name = ?)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return exists, nil
}

// CountImages returns the number of gallery records referencing this
// author.
func (r *sqliteRepository) CountImages(ctx context.Context, authorID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM images WHERE author_id = ?`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count images: %w", err)
	}
	return count, nil
}

// Delete removes an author by id. Referential checks live in the
// service layer.
func (r *sqliteRepository) Delete(ctx context.Context, id int64) error {
	var name string
	err := r.db.QueryRowContext(ctx, `SELECT name FROM authors WHERE id = ?`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrAuthorNotFound
		}
		return fmt.Errorf("failed to load author: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM authors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return model.ErrAuthorNotFound
	}

	r.cache.Delete(ctx, fmt.Sprintf("%s%d", authorCacheKeyPrefix, id), authorNameKeyPrefix+name)
	r.invalidateListCache(ctx)

	return nil
}

func (r *sqliteRepository) invalidateListCache(ctx context.Context) {
	r.cache.Delete(ctx, authorListKey)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAuthor(s scanner) (*model.Author, error) {
	var (
		a         model.Author
		urlsJSON  string
		createdAt string
		updatedAt string
	)

	if err := s.Scan(&a.ID, &a.Name, &urlsJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(urlsJSON), &a.SNSUrls); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sns urls: %w", err)
	}
	if a.SNSUrls == nil {
		a.SNSUrls = []string{}
	}

	a.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	a.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)

	return &a, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

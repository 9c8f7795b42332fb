package repository

import (
	"context"

	"gallery-backend/internal/domains/author/model"
)

// RepositoryInterface is the author data access contract.
type RepositoryInterface interface {
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	GetByID(ctx context.Context, id int64) (*model.Author, error)
	GetByName(ctx context.Context, name string) (*model.Author, error)
	GetAll(ctx context.Context) ([]model.Author, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	CountImages(ctx context.Context, authorID int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

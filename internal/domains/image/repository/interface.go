package repository

import (
	"context"

	"gallery-backend/internal/domains/image/model"
)

// RepositoryInterface is the gallery record data access contract.
// withAuthor joins the author row into the result.
type RepositoryInterface interface {
	Create(ctx context.Context, img *model.ImageData) (*model.ImageData, error)
	GetByID(ctx context.Context, id int64, withAuthor bool) (*model.ImageData, error)
	GetAll(ctx context.Context, withAuthor bool) ([]model.ImageData, error)
	Update(ctx context.Context, img *model.ImageData) error
	Delete(ctx context.Context, id int64) error
}

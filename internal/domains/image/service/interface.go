package service

import (
	"context"

	"gallery-backend/internal/domains/image/model"
)

// ServiceInterface is the gallery record business logic contract.
type ServiceInterface interface {
	Create(ctx context.Context, form *model.ImageForm) (*model.ImageData, error)
	GetByID(ctx context.Context, id int64) (*model.ImageData, error)
	GetAll(ctx context.Context) ([]model.ImageData, error)
	Update(ctx context.Context, id int64, form *model.ImageForm) (*model.ImageData, error)
	Delete(ctx context.Context, id int64) error

	// PublicPath projects a stored filename onto its URL path.
	PublicPath(name string) string
}

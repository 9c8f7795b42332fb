package service

import (
	"context"

	"gallery-backend/internal/domains/author/model"
)

// ServiceInterface is the author business logic contract.
type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)
	GetByID(ctx context.Context, id int64) (*model.Author, error)
	GetAll(ctx context.Context) ([]model.Author, error)
	Delete(ctx context.Context, id int64) error

	// Resolve maps the three author form variants onto an author row:
	// an explicit id must exist, a new name must be free, a legacy
	// name is find-or-create.
	Resolve(ctx context.Context, ref model.AuthorRef) (*model.Author, error)
}

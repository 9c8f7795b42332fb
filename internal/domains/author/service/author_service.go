package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gallery-backend/internal/domains/author/model"
	"gallery-backend/internal/domains/author/repository"
)

// authorService implements ServiceInterface.
type authorService struct {
	repo repository.RepositoryInterface
}

// NewAuthorService creates a new author service instance.
// Depends on the repository abstraction so tests can swap it out.
func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{
		repo: repo,
	}
}

func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.ErrInvalidName
	}
	if len(name) > model.MaxNameLength {
		return nil, model.ErrNameTooLong
	}

	// Explicit existence check so duplicates are a clean conflict,
	// not a constraint blowup.
	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
	}
	if exists {
		return nil, model.ErrDuplicateName
	}

	created, err := s.repo.Create(ctx, &model.Author{
		Name:    name,
		SNSUrls: req.SNSUrls,
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	if id <= 0 {
		return nil, model.ErrAuthorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) GetAll(ctx context.Context) ([]model.Author, error) {
	return s.repo.GetAll(ctx)
}

func (s *authorService) Delete(ctx context.Context, id int64) error {
	// Referential integrity check before deleting.
	imageCount, err := s.repo.CountImages(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check image count: %w", err)
	}

	if imageCount > 0 {
		return fmt.Errorf("%w: author has %d linked images", model.ErrAuthorHasImages, imageCount)
	}

	return s.repo.Delete(ctx, id)
}

// Resolve maps the author form fields of an image request onto an
// author row.
func (s *authorService) Resolve(ctx context.Context, ref model.AuthorRef) (*model.Author, error) {
	switch {
	case ref.ID != nil:
		// Explicit id must reference an existing author.
		return s.repo.GetByID(ctx, *ref.ID)

	case ref.NewName != "":
		// New name must be free.
		return s.Create(ctx, &model.CreateAuthorRequest{Name: ref.NewName})

	case ref.LegacyName != "":
		// Legacy flat field: find-or-create.
		name := strings.TrimSpace(ref.LegacyName)
		if name == "" {
			return nil, model.ErrInvalidName
		}

		a, err := s.repo.GetByName(ctx, name)
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, model.ErrAuthorNotFound) {
			return nil, err
		}

		created, err := s.Create(ctx, &model.CreateAuthorRequest{Name: name})
		if errors.Is(err, model.ErrDuplicateName) {
			// Lost a concurrent find-or-create race; the row exists now.
			return s.repo.GetByName(ctx, name)
		}
		return created, err

	default:
		return nil, model.ErrInvalidName
	}
}

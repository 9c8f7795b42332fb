package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	authormodel "gallery-backend/internal/domains/author/model"
	"gallery-backend/internal/infrastructure/storage"
)

var (
	// Validation Errors
	ErrMissingMainImage = errors.New("main_image file is required")
	ErrMissingComments  = errors.New("comments field is required")
	ErrMissingAuthor    = errors.New("an author reference is required")

	// Business Rule Errors
	ErrImageNotFound = errors.New("image not found")

	// Infrastructure Errors
	ErrStorageFailure = errors.New("asset storage failure")
)

// ToErrorCode converts error to API error code.
// Author and storage errors pass through with their own codes.
func ToErrorCode(err error) string {
	if verrs := asValidationErrors(err); verrs != nil {
		switch {
		case verrs["main_image"] != nil:
			return "MISSING_MAIN_IMAGE"
		case verrs["comments"] != nil:
			return "MISSING_COMMENTS"
		case verrs["author"] != nil:
			return "MISSING_AUTHOR"
		default:
			return "VALIDATION_ERROR"
		}
	}

	switch {
	case errors.Is(err, ErrImageNotFound):
		return "IMAGE_NOT_FOUND"
	case errors.Is(err, ErrMissingMainImage):
		return "MISSING_MAIN_IMAGE"
	case errors.Is(err, ErrMissingComments):
		return "MISSING_COMMENTS"
	case errors.Is(err, ErrMissingAuthor):
		return "MISSING_AUTHOR"
	case errors.Is(err, storage.ErrUnsafeFilename):
		return "UNSAFE_FILENAME"
	case errors.Is(err, ErrStorageFailure):
		return "STORAGE_ERROR"
	default:
		return authormodel.ToErrorCode(err)
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	if asValidationErrors(err) != nil {
		return 400
	}

	switch {
	case errors.Is(err, ErrImageNotFound):
		return 404
	case errors.Is(err, ErrMissingMainImage),
		errors.Is(err, ErrMissingComments),
		errors.Is(err, ErrMissingAuthor),
		errors.Is(err, storage.ErrUnsafeFilename):
		return 400
	case errors.Is(err, ErrStorageFailure):
		return 500
	default:
		return authormodel.ToHTTPStatus(err)
	}
}

// asValidationErrors unwraps the per-field error map produced by form
// validation, or returns nil.
func asValidationErrors(err error) validation.Errors {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}

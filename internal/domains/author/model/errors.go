package model

import "errors"

var (
	// Validation Errors
	ErrInvalidName = errors.New("author name is invalid")
	ErrNameTooLong = errors.New("author name exceeds maximum length")

	// Business Rule Errors
	ErrAuthorNotFound  = errors.New("author not found")
	ErrDuplicateName   = errors.New("author with this name already exists")
	ErrAuthorHasImages = errors.New("cannot delete author with linked images")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrDuplicateName):
		return "DUPLICATE_NAME"
	case errors.Is(err, ErrAuthorHasImages):
		return "AUTHOR_HAS_IMAGES"
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrNameTooLong):
		return "INVALID_NAME"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return 404
	case errors.Is(err, ErrDuplicateName), errors.Is(err, ErrAuthorHasImages):
		return 409
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrNameTooLong):
		return 400
	default:
		return 500
	}
}

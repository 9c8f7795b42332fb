package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Author is the creator a gallery record points at.
// SNSUrls is stored as a JSON array column.
type Author struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"author_name" db:"name"`
	SNSUrls   []string  `json:"sns_urls" db:"sns_urls"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateAuthorRequest struct {
	Name    string   `json:"author_name"`
	SNSUrls []string `json:"sns_urls"`
}

// Validate enforces the author constraints: name present, at most 100
// characters, urls well-formed.
func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("author name is required"), validation.Length(1, MaxNameLength)),
		validation.Field(&r.SNSUrls, validation.Each(is.URL)),
	)
}

type AuthorResponse struct {
	ID      int64    `json:"id"`
	Name    string   `json:"author_name"`
	SNSUrls []string `json:"sns_urls"`
}

// ToResponse converts Author to AuthorResponse.
// SNSUrls is never null on the wire.
func (a *Author) ToResponse() *AuthorResponse {
	urls := a.SNSUrls
	if urls == nil {
		urls = []string{}
	}
	return &AuthorResponse{
		ID:      a.ID,
		Name:    a.Name,
		SNSUrls: urls,
	}
}

const MaxNameLength = 100

// AuthorRef carries the author fields of an image form. Variants are
// resolved in precedence order: ID first, then NewName, then the
// legacy LegacyName find-or-create alias.
type AuthorRef struct {
	ID         *int64
	NewName    string
	LegacyName string
}

// Empty reports whether the form named no author at all.
func (ref AuthorRef) Empty() bool {
	return ref.ID == nil && ref.NewName == "" && ref.LegacyName == ""
}

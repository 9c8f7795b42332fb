package model

import (
	"time"

	authormodel "gallery-backend/internal/domains/author/model"
)

// SubImage is one ordered supplementary image. Position is the upload
// index; the background flag is bound to it.
type SubImage struct {
	Filename      string `json:"filename" db:"filename"`
	HasBackground bool   `json:"has_background" db:"has_background"`
	Position      int    `json:"position" db:"position"`
}

// ImageData is a gallery record: one required main image plus ordered
// sub-images, tags and a comment, owned by an author.
type ImageData struct {
	ID                     int64               `json:"id" db:"id"`
	AuthorID               int64               `json:"author_id" db:"author_id"`
	Author                 *authormodel.Author `json:"author,omitempty"`
	MainImagePath          string              `json:"main_image_path" db:"main_image_path"`
	MainImageHasBackground bool                `json:"main_image_has_background" db:"main_image_has_background"`
	SubImages              []SubImage          `json:"sub_images"`
	Tags                   []string            `json:"tags"`
	Comments               string              `json:"comments" db:"comments"`
	CreatedAt              time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time           `json:"updated_at" db:"updated_at"`
}

// SubImageFilenames returns the stored names in position order.
func (img *ImageData) SubImageFilenames() []string {
	names := make([]string, 0, len(img.SubImages))
	for _, s := range img.SubImages {
		names = append(names, s.Filename)
	}
	return names
}

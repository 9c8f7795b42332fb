package model

import (
	"mime/multipart"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	authormodel "gallery-backend/internal/domains/author/model"
)

// ImageForm is the decoded multipart request for create and update.
// Presence flags distinguish "field omitted" from "field empty" so
// updates can merge partially.
type ImageForm struct {
	Author authormodel.AuthorRef

	Tags        []string // already normalized
	TagsPresent bool

	Comments        string
	CommentsPresent bool

	MainImage                *multipart.FileHeader // nil when not re-uploaded
	MainHasBackground        bool
	MainHasBackgroundPresent bool
	SubImages                []*multipart.FileHeader
	SubHasBackground         []bool // positional, same length as SubImages
}

// ValidateCreate enforces the create contract: main image, comments
// and some author reference are all required.
func (f ImageForm) ValidateCreate() error {
	return validation.Errors{
		"main_image": validation.Validate(f.MainImage,
			validation.Required.ErrorObject(validation.NewError("required", ErrMissingMainImage.Error()))),
		"comments": validation.Validate(f.Comments,
			validation.Required.ErrorObject(validation.NewError("required", ErrMissingComments.Error()))),
		"author": validation.Validate(!f.Author.Empty(),
			validation.In(true).ErrorObject(validation.NewError("required", ErrMissingAuthor.Error()))),
	}.Filter()
}

// ========================================
// RESPONSE PROJECTION
// ========================================

type SubImageView struct {
	Filename      string `json:"filename"`
	HasBackground bool   `json:"has_background"`
}

type AuthorView struct {
	ID      int64    `json:"id"`
	Name    string   `json:"author_name"`
	SNSUrls []string `json:"sns_urls"`
}

// ImageView is the wire shape of a gallery record. The flattened
// author_name sits next to the nested author object so clients of
// either schema revision can read it.
type ImageView struct {
	ID                     int64          `json:"id"`
	AuthorName             string         `json:"author_name"`
	Author                 *AuthorView    `json:"author"`
	MainImagePath          string         `json:"main_image_path"`
	MainImageHasBackground bool           `json:"main_image_has_background"`
	SubImagePaths          []SubImageView `json:"sub_image_paths"`
	Tags                   []string       `json:"tags"`
	Comments               string         `json:"comments"`
}

// ToResponse projects the record for the API. Every stored filename
// goes through publicPath; sub_image_paths and tags are never null.
func (img *ImageData) ToResponse(publicPath func(string) string) *ImageView {
	subs := make([]SubImageView, 0, len(img.SubImages))
	for _, s := range img.SubImages {
		subs = append(subs, SubImageView{
			Filename:      publicPath(s.Filename),
			HasBackground: s.HasBackground,
		})
	}

	tags := img.Tags
	if tags == nil {
		tags = []string{}
	}

	view := &ImageView{
		ID:                     img.ID,
		MainImagePath:          publicPath(img.MainImagePath),
		MainImageHasBackground: img.MainImageHasBackground,
		SubImagePaths:          subs,
		Tags:                   tags,
		Comments:               img.Comments,
	}

	if img.Author != nil {
		urls := img.Author.SNSUrls
		if urls == nil {
			urls = []string{}
		}
		view.AuthorName = img.Author.Name
		view.Author = &AuthorView{
			ID:      img.Author.ID,
			Name:    img.Author.Name,
			SNSUrls: urls,
		}
	}

	return view
}

package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gallery-backend/internal/domains/image/model"
	"gallery-backend/internal/domains/image/service"
	"gallery-backend/internal/shared/response"
)

type ImageHandler struct {
	service service.ServiceInterface
}

func NewImageHandler(svc service.ServiceInterface) *ImageHandler {
	return &ImageHandler{
		service: svc,
	}
}

// ========================================
// CREATE: POST /images
// ========================================

func (h *ImageHandler) Create(c *gin.Context) {
	form, err := decodeImageForm(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	_, err = h.service.Create(c.Request.Context(), form)
	if err != nil {
		response.Error(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}

	response.Message(c, http.StatusCreated, "Image added successfully")
}

// ========================================
// READ: GET /images
// ========================================

func (h *ImageHandler) GetAll(c *gin.Context) {
	images, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}

	result := make([]model.ImageView, 0, len(images))
	for i := range images {
		result = append(result, *images[i].ToResponse(h.service.PublicPath))
	}

	c.JSON(http.StatusOK, result)
}

// ========================================
// READ: GET /images/:id
// ========================================

func (h *ImageHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid image id")
		return
	}

	img, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, img.ToResponse(h.service.PublicPath))
}

// ========================================
// UPDATE: PUT /images/:id
// ========================================

func (h *ImageHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid image id")
		return
	}

	form, err := decodeImageForm(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	_, err = h.service.Update(c.Request.Context(), id, form)
	if err != nil {
		response.Error(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}

	response.Message(c, http.StatusOK, "Image updated successfully")
}

// ========================================
// DELETE: DELETE /images/:id
// ========================================

func (h *ImageHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid image id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}

	response.Message(c, http.StatusOK, "Image deleted successfully")
}

// ========================================
// REQUEST DECODER
// ========================================

// decodeImageForm reads the multipart request into an ImageForm.
// Author fields in precedence order: numeric author_id, then
// new_author_name, then the legacy author_name alias. Background
// flags are bound positionally to the uploads.
func decodeImageForm(c *gin.Context) (*model.ImageForm, error) {
	mp, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	form := &model.ImageForm{}

	if v, ok := firstValue(mp.Value, "author_id"); ok && v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid author_id: %q", v)
		}
		form.Author.ID = &id
	}
	if v, ok := firstValue(mp.Value, "new_author_name"); ok {
		form.Author.NewName = v
	}
	if v, ok := firstValue(mp.Value, "author_name"); ok {
		form.Author.LegacyName = v
	}

	if values, ok := mp.Value["tags"]; ok {
		form.Tags = model.NormalizeTags(values)
		form.TagsPresent = true
	} else {
		form.Tags = []string{}
	}

	if v, ok := firstValue(mp.Value, "comments"); ok {
		form.Comments = v
		form.CommentsPresent = true
	}

	if files, ok := mp.File["main_image"]; ok && len(files) > 0 {
		form.MainImage = files[0]
	}
	if v, ok := firstValue(mp.Value, "main_image_has_background"); ok {
		form.MainHasBackground = model.ParseBoolFlag(v)
		form.MainHasBackgroundPresent = true
	}

	form.SubImages = mp.File["sub_images"]
	form.SubHasBackground = make([]bool, len(form.SubImages))
	for i := range form.SubImages {
		key := fmt.Sprintf("sub_image_has_background_%d", i)
		form.SubHasBackground[i] = model.ParseBoolFlag(c.PostForm(key))
	}

	return form, nil
}

func firstValue(values map[string][]string, key string) (string, bool) {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

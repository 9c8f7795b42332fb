package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gallery-backend/internal/domains/author/model"
	"gallery-backend/internal/domains/author/service"
	"gallery-backend/internal/shared/response"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// ========================================
// CREATE: POST /authors
// ========================================

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest

	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	_, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}

	response.Message(c, http.StatusCreated, "Author added successfully")
}

// ========================================
// READ: GET /authors
// ========================================

func (h *AuthorHandler) GetAll(c *gin.Context) {
	authors, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}

	result := make([]model.AuthorResponse, 0, len(authors))
	for _, a := range authors {
		result = append(result, *a.ToResponse())
	}

	c.JSON(http.StatusOK, result)
}

// ========================================
// READ: GET /authors/:id
// ========================================

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, a.ToResponse())
}

// ========================================
// DELETE: DELETE /authors/:id
// ========================================

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}

	response.Message(c, http.StatusOK, "Author deleted successfully")
}

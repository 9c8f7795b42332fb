package response

import (
	"github.com/gin-gonic/gin"
)

// Mutation endpoints answer with a bare message object; errors carry a
// machine-readable code. Read endpoints return their payload directly.

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Message writes a {"message": ...} body.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageResponse{Message: message})
}

// Error writes a {"error": {"code", "message"}} body.
func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, "BAD_REQUEST", message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 401, "UNAUTHORIZED", message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 404, "NOT_FOUND", message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 409, "CONFLICT", message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, 500, "INTERNAL_ERROR", message)
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gallery-backend/internal/shared/response"
)

// CORS allows the configured frontend origin. Preflight requests are
// answered here with status 200, the status the frontend expects.
func CORS(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowedOrigin)
		c.Header("Access-Control-Allow-Methods", "POST, GET, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			response.Message(c, http.StatusOK, "CORS preflight")
			c.Abort()
			return
		}

		c.Next()
	}
}

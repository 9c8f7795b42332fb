package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gallery-backend/internal/domains/auth/service"
	"gallery-backend/internal/shared/response"
	"gallery-backend/pkg/jwt"
)

const sessionTokenKey = "access_token"

// OAuthHandler proxies the provider login flow. The access token
// lives in the server-side cookie session; the frontend only ever
// sees JSON.
type OAuthHandler struct {
	service service.ServiceInterface
	state   *jwt.Manager
}

func NewOAuthHandler(svc service.ServiceInterface, state *jwt.Manager) *OAuthHandler {
	return &OAuthHandler{
		service: svc,
		state:   state,
	}
}

// ========================================
// LOGIN: GET /login
// ========================================

func (h *OAuthHandler) Login(c *gin.Context) {
	state, err := h.state.GenerateStateToken()
	if err != nil {
		response.InternalServerError(c, "failed to generate state")
		return
	}

	authorizeURL, err := h.service.AuthorizeURL(state)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, authorizeURL)
}

// ========================================
// CALLBACK: GET /callback
// ========================================

func (h *OAuthHandler) Callback(c *gin.Context) {
	state := c.Query("state")
	if _, err := h.state.ValidateStateToken(state); err != nil {
		response.BadRequest(c, "invalid state parameter")
		return
	}

	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, "missing authorization code")
		return
	}

	token, err := h.service.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(sessionTokenKey, token)
	if err := session.Save(); err != nil {
		log.Error().Err(err).Msg("Failed to save session")
		response.InternalServerError(c, "failed to save session")
		return
	}

	response.Message(c, http.StatusOK, "Login successful")
}

// ========================================
// USERINFO: GET /userinfo
// ========================================

func (h *OAuthHandler) UserInfo(c *gin.Context) {
	session := sessions.Default(c)

	token, ok := session.Get(sessionTokenKey).(string)
	if !ok || token == "" {
		response.Unauthorized(c, "not logged in")
		return
	}

	body, status, err := h.service.FetchUserInfo(c.Request.Context(), token)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// Provider response passes through verbatim.
	c.Data(status, "application/json", body)
}

func (h *OAuthHandler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotConfigured):
		response.Error(c, http.StatusServiceUnavailable, "OAUTH_NOT_CONFIGURED", err.Error())
	case errors.Is(err, service.ErrExchangeFailed):
		response.Error(c, http.StatusBadGateway, "OAUTH_EXCHANGE_FAILED", err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}

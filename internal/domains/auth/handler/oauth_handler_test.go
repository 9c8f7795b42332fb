package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gallery-backend/internal/domains/auth/service"
	"gallery-backend/pkg/jwt"
)

type MockOAuthService struct {
	mock.Mock
}

func (m *MockOAuthService) AuthorizeURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockOAuthService) ExchangeCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockOAuthService) FetchUserInfo(ctx context.Context, accessToken string) ([]byte, int, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Int(1), args.Error(2)
}

func setupRouter(svc *MockOAuthService, state *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewOAuthHandler(svc, state)

	router := gin.New()
	router.Use(sessions.Sessions("gallery_session", cookie.NewStore([]byte("test-session-secret"))))
	router.GET("/login", h.Login)
	router.GET("/callback", h.Callback)
	router.GET("/userinfo", h.UserInfo)
	return router
}

func TestLogin_RedirectsWithSignedState(t *testing.T) {
	svc := new(MockOAuthService)
	state := jwt.NewManager("state-secret")
	router := setupRouter(svc, state)

	svc.On("AuthorizeURL", mock.AnythingOfType("string")).
		Return("https://provider.example.com/authorize?state=x", nil)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://provider.example.com/authorize?state=x", w.Header().Get("Location"))

	// The state handed to the provider must verify.
	passed := svc.Calls[0].Arguments.String(0)
	_, err := state.ValidateStateToken(passed)
	assert.NoError(t, err)
}

func TestCallback_InvalidState(t *testing.T) {
	svc := new(MockOAuthService)
	router := setupRouter(svc, jwt.NewManager("state-secret"))

	req := httptest.NewRequest(http.MethodGet, "/callback?state=forged&code=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ExchangeCode")
}

func TestCallback_MissingCode(t *testing.T) {
	svc := new(MockOAuthService)
	state := jwt.NewManager("state-secret")
	router := setupRouter(svc, state)

	token, err := state.GenerateStateToken()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/callback?state="+url.QueryEscape(token), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ExchangeCode")
}

func TestCallback_ExchangeFails(t *testing.T) {
	svc := new(MockOAuthService)
	state := jwt.NewManager("state-secret")
	router := setupRouter(svc, state)

	svc.On("ExchangeCode", mock.Anything, "bad-code").Return("", service.ErrExchangeFailed)

	token, err := state.GenerateStateToken()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet,
		"/callback?state="+url.QueryEscape(token)+"&code=bad-code", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestUserInfo_NotLoggedIn(t *testing.T) {
	svc := new(MockOAuthService)
	router := setupRouter(svc, jwt.NewManager("state-secret"))

	req := httptest.NewRequest(http.MethodGet, "/userinfo", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "FetchUserInfo")
}

func TestCallbackThenUserInfo(t *testing.T) {
	svc := new(MockOAuthService)
	state := jwt.NewManager("state-secret")
	router := setupRouter(svc, state)

	svc.On("ExchangeCode", mock.Anything, "the-code").Return("the-token", nil)
	svc.On("FetchUserInfo", mock.Anything, "the-token").
		Return([]byte(`{"sub": "user-1"}`), http.StatusOK, nil)

	token, err := state.GenerateStateToken()
	require.NoError(t, err)

	// Callback stores the access token in the cookie session.
	callbackReq := httptest.NewRequest(http.MethodGet,
		"/callback?state="+url.QueryEscape(token)+"&code=the-code", nil)
	callbackW := httptest.NewRecorder()
	router.ServeHTTP(callbackW, callbackReq)

	require.Equal(t, http.StatusOK, callbackW.Code)
	assert.JSONEq(t, `{"message": "Login successful"}`, callbackW.Body.String())
	cookies := callbackW.Result().Cookies()
	require.NotEmpty(t, cookies)

	// The follow-up userinfo call rides the session cookie.
	infoReq := httptest.NewRequest(http.MethodGet, "/userinfo", nil)
	for _, c := range cookies {
		infoReq.AddCookie(c)
	}
	infoW := httptest.NewRecorder()
	router.ServeHTTP(infoW, infoReq)

	assert.Equal(t, http.StatusOK, infoW.Code)
	assert.JSONEq(t, `{"sub": "user-1"}`, infoW.Body.String())
	svc.AssertExpectations(t)
}

func TestUserInfo_ProviderStatusPassesThrough(t *testing.T) {
	svc := new(MockOAuthService)
	state := jwt.NewManager("state-secret")
	router := setupRouter(svc, state)

	svc.On("ExchangeCode", mock.Anything, "the-code").Return("stale-token", nil)
	svc.On("FetchUserInfo", mock.Anything, "stale-token").
		Return([]byte(`{"error": "invalid_token"}`), http.StatusUnauthorized, nil)

	token, err := state.GenerateStateToken()
	require.NoError(t, err)

	callbackReq := httptest.NewRequest(http.MethodGet,
		"/callback?state="+url.QueryEscape(token)+"&code=the-code", nil)
	callbackW := httptest.NewRecorder()
	router.ServeHTTP(callbackW, callbackReq)
	require.Equal(t, http.StatusOK, callbackW.Code)

	infoReq := httptest.NewRequest(http.MethodGet, "/userinfo", nil)
	for _, c := range callbackW.Result().Cookies() {
		infoReq.AddCookie(c)
	}
	infoW := httptest.NewRecorder()
	router.ServeHTTP(infoW, infoReq)

	assert.Equal(t, http.StatusUnauthorized, infoW.Code)
	assert.JSONEq(t, `{"error": "invalid_token"}`, infoW.Body.String())
}

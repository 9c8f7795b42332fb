package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gallery-backend/internal/config"
)

// oauthService implements ServiceInterface against a generic
// authorization-code provider.
type oauthService struct {
	cfg    config.OAuthConfig
	client *http.Client
}

// NewOAuthService creates a new OAuth service instance. The HTTP
// client is injectable for tests; nil gets a sane default.
func NewOAuthService(cfg config.OAuthConfig, client *http.Client) ServiceInterface {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &oauthService{
		cfg:    cfg,
		client: client,
	}
}

func (s *oauthService) AuthorizeURL(state string) (string, error) {
	if s.cfg.ClientID == "" || s.cfg.AuthURL == "" {
		return "", ErrNotConfigured
	}

	params := url.Values{}
	params.Set("client_id", s.cfg.ClientID)
	params.Set("redirect_uri", s.cfg.RedirectURL)
	params.Set("response_type", "code")
	params.Set("scope", s.cfg.Scope)
	params.Set("state", state)

	return s.cfg.AuthURL + "?" + params.Encode(), nil
}

func (s *oauthService) ExchangeCode(ctx context.Context, code string) (string, error) {
	if s.cfg.ClientID == "" || s.cfg.TokenURL == "" {
		return "", ErrNotConfigured
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", s.cfg.RedirectURL)
	form.Set("client_id", s.cfg.ClientID)
	form.Set("client_secret", s.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: provider returned status %d", ErrExchangeFailed, resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: invalid token response: %v", ErrExchangeFailed, err)
	}

	if body.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrExchangeFailed)
	}

	return body.AccessToken, nil
}

func (s *oauthService) FetchUserInfo(ctx context.Context, accessToken string) ([]byte, int, error) {
	if s.cfg.UserInfoURL == "" {
		return nil, 0, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.UserInfoURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read userinfo response: %w", err)
	}

	return body, resp.StatusCode, nil
}

package service

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured means the OAuth provider settings are absent.
	ErrNotConfigured = errors.New("oauth provider is not configured")
	// ErrExchangeFailed means the provider rejected the code exchange.
	ErrExchangeFailed = errors.New("token exchange failed")
)

// ServiceInterface is the OAuth pass-through contract. The backend
// holds the client secret and the token; the frontend never sees
// either.
type ServiceInterface interface {
	// AuthorizeURL builds the provider authorize redirect carrying
	// the signed state.
	AuthorizeURL(state string) (string, error)

	// ExchangeCode trades the callback code for an access token,
	// server to server.
	ExchangeCode(ctx context.Context, code string) (string, error)

	// FetchUserInfo forwards the bearer token to the provider and
	// returns its response body and status verbatim.
	FetchUserInfo(ctx context.Context, accessToken string) ([]byte, int, error)
}

package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// StateClaims is the payload carried by an OAuth state token.
// The nonce makes every login redirect unique.
type StateClaims struct {
	Nonce string `json:"nonce"`
	Type  string `json:"type"` // always "state"
	jwt.RegisteredClaims
}

// Manager handles JWT operations
type Manager struct {
	secret string
}

// NewManager creates new JWT manager
func NewManager(secret string) *Manager {
	return &Manager{secret: secret}
}

// GenerateStateToken generates a short-lived signed state parameter
// for the OAuth authorize redirect.
func (m *Manager) GenerateStateToken() (string, error) {
	claims := StateClaims{
		Nonce: uuid.NewString(),
		Type:  "state",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// ValidateStateToken validates the state parameter echoed back by the
// OAuth provider on the callback.
func (m *Manager) ValidateStateToken(tokenString string) (*StateClaims, error) {
	claims := &StateClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Type != "state" {
		return nil, fmt.Errorf("invalid token type: expected state, got %s", claims.Type)
	}

	return claims, nil
}

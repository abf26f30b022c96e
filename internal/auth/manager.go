package auth

import (
	"context"
	"errors"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoToken                 = errors.New("no access token available")
	ErrTokenRefreshUnsupported = errors.New("token refresh is not supported; create a new client to re-authenticate")
)

// TokenManager supplies bearer tokens to the transport.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// SingleShotTokenManager serves the one token obtained at login. It never
// performs network I/O and never re-authenticates.
type SingleShotTokenManager struct {
	store *TokenStore
}

// NewSingleShotTokenManager creates a manager holding token.
func NewSingleShotTokenManager(token *Token) *SingleShotTokenManager {
	store := NewTokenStore()
	if token != nil {
		store.Set(token)
	}

	return &SingleShotTokenManager{store: store}
}

// GetToken returns the stored access token, expired or not.
func (m *SingleShotTokenManager) GetToken(_ context.Context) (string, error) {
	token := m.store.Get()
	if token == nil || token.AccessToken == "" {
		return "", ErrNoToken
	}

	return token.AccessToken, nil
}

// RefreshToken always fails.
func (m *SingleShotTokenManager) RefreshToken(_ context.Context) error {
	return ErrTokenRefreshUnsupported
}

// SetToken replaces the stored token.
func (m *SingleShotTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: token, TokenType: "bearer", ExpiresAt: expiresAt})
}

// Expired reports whether the stored token is missing or past its expiry
// buffer.
func (m *SingleShotTokenManager) Expired() bool {
	return !m.store.Get().Valid()
}

// ExpiresAt returns the stored token's expiry, or the zero time.
func (m *SingleShotTokenManager) ExpiresAt() time.Time {
	token := m.store.Get()
	if token == nil {
		return time.Time{}
	}

	return token.ExpiresAt
}

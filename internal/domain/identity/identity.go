// Package identity describes callers authenticated by the hosted auth service.
package identity

import (
	"context"
	"errors"
)

var (
	ErrInvalidToken  = errors.New("identity: invalid token")
	ErrNotConfigured = errors.New("identity: token verification not configured")
)

// Principal is an authenticated caller
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// TokenVerifier resolves a bearer token into a principal.
// Invalid or expired tokens yield ErrInvalidToken.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

// ProfileRepository reads application roles from user profiles
type ProfileRepository interface {
	RoleOf(ctx context.Context, userID string) (string, error)
}

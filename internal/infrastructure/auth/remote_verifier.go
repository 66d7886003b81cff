package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/identity"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/config"
)

const userPath = "/auth/v1/user"

// RemoteVerifier resolves tokens by asking the hosted auth service who they belong to
type RemoteVerifier struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

type remoteUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// NewRemoteVerifier creates a verifier calling <baseURL>/auth/v1/user
func NewRemoteVerifier(baseURL, anonKey string, timeout time.Duration) *RemoteVerifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteVerifier{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Verify implements identity.TokenVerifier
func (v *RemoteVerifier) Verify(ctx context.Context, token string) (*identity.Principal, error) {
	if token == "" {
		return nil, identity.ErrInvalidToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+userPath, nil)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to create request: %w", err)
	}
	req.Header.Set("apikey", v.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("auth: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, identity.ErrInvalidToken
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("auth: user lookup returned HTTP %d", resp.StatusCode)
	}

	var user remoteUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("auth: invalid user response: %w", err)
	}
	if user.ID == "" {
		return nil, identity.ErrInvalidToken
	}

	return &identity.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// NewTokenVerifier picks local JWT verification when a JWT secret is
// configured and falls back to the remote user endpoint otherwise.
func NewTokenVerifier(cfg config.AuthConfig) (identity.TokenVerifier, error) {
	if cfg.JWTSecret != "" {
		return NewJWTVerifier(cfg.JWTSecret), nil
	}
	if cfg.BaseURL != "" && cfg.AnonKey != "" {
		return NewRemoteVerifier(cfg.BaseURL, cfg.AnonKey, cfg.Timeout), nil
	}
	return nil, identity.ErrNotConfigured
}

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/identity"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, method jwt.SigningMethod, secret any, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func validClaims() *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "8d0f6f7a-5b0e-4f0a-9d3c-2c9d2b1f7e10",
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: "buyer@example.com",
		Role:  "authenticated",
	}
}

func TestJWTVerifier_Verify(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	principal, err := v.Verify(context.Background(), signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "8d0f6f7a-5b0e-4f0a-9d3c-2c9d2b1f7e10", principal.UserID)
	assert.Equal(t, "buyer@example.com", principal.Email)
	assert.Equal(t, "authenticated", principal.Role)
}

func TestJWTVerifier_Rejects(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	t.Run("empty token", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "")
		assert.ErrorIs(t, err, identity.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte("another-secret-another-secret-xx"), validClaims())
		_, err := v.Verify(context.Background(), token)
		assert.ErrorIs(t, err, identity.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		_, err := v.Verify(context.Background(), signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
		assert.ErrorIs(t, err, identity.ErrInvalidToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = nil
		_, err := v.Verify(context.Background(), signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
		assert.ErrorIs(t, err, identity.ErrInvalidToken)
	})

	t.Run("anon audience", func(t *testing.T) {
		claims := validClaims()
		claims.Audience = jwt.ClaimStrings{"anon"}
		_, err := v.Verify(context.Background(), signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
		assert.ErrorIs(t, err, identity.ErrInvalidToken)
	})

	t.Run("other hmac method", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims())
		_, err := v.Verify(context.Background(), token)
		assert.ErrorIs(t, err, identity.ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := validClaims()
		claims.Subject = ""
		_, err := v.Verify(context.Background(), signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
		assert.ErrorIs(t, err, ErrMissingSubject)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "not.a.jwt")
		assert.ErrorIs(t, err, identity.ErrInvalidToken)
	})
}

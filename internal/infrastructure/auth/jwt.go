package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/identity"
)

// Common errors
var (
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingSubject   = errors.New("missing sub in claims")
)

// audienceAuthenticated is the audience of tokens issued to signed-in users
const audienceAuthenticated = "authenticated"

// Claims are the claims of an access token issued by the hosted auth service
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

// JWTVerifier verifies HS256 access tokens locally with the project's JWT secret
type JWTVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewJWTVerifier creates a verifier for tokens signed with secret
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithAudience(audienceAuthenticated),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify implements identity.TokenVerifier
func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (*identity.Principal, error) {
	claims, err := v.ParseClaims(tokenString)
	if err != nil {
		return nil, errors.Join(identity.ErrInvalidToken, err)
	}
	return &identity.Principal{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// ParseClaims validates the token and returns its claims
func (v *JWTVerifier) ParseClaims(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, identity.ErrInvalidToken
	}

	token, err := v.parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, identity.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, identity.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return claims, nil
}

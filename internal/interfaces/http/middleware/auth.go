package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/identity"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/logger"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/interfaces/http/dto"
)

// Context keys set for authenticated requests
const (
	UserIDKey     = "user_id"
	UserEmailKey  = "user_email"
	UserRoleKey   = "user_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// BearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" when the header is missing or uses another scheme.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader(AuthHeaderKey)
	if len(header) < len(BearerPrefix) || !strings.EqualFold(header[:len(BearerPrefix)], BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(BearerPrefix):])
}

// AdminAuthConfig configures AdminAuth
type AdminAuthConfig struct {
	Verifier identity.TokenVerifier
	Profiles identity.ProfileRepository
	// AdminRole is the profile role granted access
	AdminRole string
	Logger    *zap.Logger
}

// AdminAuth admits requests carrying a verified bearer token whose profile
// role is the admin role. A nil verifier rejects everything with 503.
func AdminAuth(cfg AdminAuthConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.AdminRole == "" {
		cfg.AdminRole = "admin"
	}

	return func(c *gin.Context) {
		principal, ok := verifyBearer(c, cfg.Verifier, cfg.Logger)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		log := logger.FromContextOr(ctx, cfg.Logger)

		role, err := cfg.Profiles.RoleOf(ctx, principal.UserID)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			role = ""
		case err != nil:
			log.Error("failed to load profile role", zap.String("user_id", principal.UserID), zap.Error(err))
			abortAuth(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
			return
		}

		if role != cfg.AdminRole {
			log.Warn("non-admin caller rejected",
				zap.String("user_id", principal.UserID),
				zap.String("role", role),
			)
			abortAuth(c, http.StatusForbidden, dto.ErrCodeForbidden, "Admin role required")
			return
		}

		c.Set(UserIDKey, principal.UserID)
		c.Set(UserEmailKey, principal.Email)
		c.Set(UserRoleKey, role)

		ctx, _ = logger.WithUserID(ctx, log, principal.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// UserAuthConfig configures UserAuth
type UserAuthConfig struct {
	Verifier identity.TokenVerifier
	Logger   *zap.Logger
}

// UserAuth admits requests carrying a verified bearer token. The caller's id
// and email are set on the context; no profile lookup is made.
func UserAuth(cfg UserAuthConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		principal, ok := verifyBearer(c, cfg.Verifier, cfg.Logger)
		if !ok {
			return
		}

		c.Set(UserIDKey, principal.UserID)
		c.Set(UserEmailKey, principal.Email)

		ctx := c.Request.Context()
		ctx, _ = logger.WithUserID(ctx, logger.FromContextOr(ctx, cfg.Logger), principal.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// verifyBearer resolves the caller from the bearer token. On failure the
// request is aborted with 503, or 401 for a missing or rejected token.
func verifyBearer(c *gin.Context, verifier identity.TokenVerifier, fallback *zap.Logger) (*identity.Principal, bool) {
	if verifier == nil {
		abortAuth(c, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable, "Token verification is not configured")
		return nil, false
	}

	token := BearerToken(c)
	if token == "" {
		abortAuth(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Missing bearer token")
		return nil, false
	}

	ctx := c.Request.Context()
	principal, err := verifier.Verify(ctx, token)
	if err != nil || principal == nil || principal.UserID == "" {
		if err != nil && !errors.Is(err, identity.ErrInvalidToken) {
			logger.FromContextOr(ctx, fallback).Warn("token verification failed", zap.Error(err))
		}
		abortAuth(c, http.StatusUnauthorized, dto.ErrCodeTokenInvalid, "Invalid or expired token")
		return nil, false
	}
	return principal, true
}

func abortAuth(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

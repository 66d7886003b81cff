package checkout

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/identity"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/order"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/logger"
)

// Request starts a checkout for one order
type Request struct {
	// Token is the caller's bearer token without the "Bearer " prefix
	Token   string
	OrderID string
	// Origin is the browser Origin header, used to build return URLs
	Origin string
}

// orderAccess authenticates the caller and loads an order they may pay
type orderAccess struct {
	verifier identity.TokenVerifier
	orders   order.Repository
	logger   *zap.Logger
}

// payableOrder runs the checks shared by every checkout, in order:
// authentication, order id presence, existence, ownership, payment state, amount.
func (a *orderAccess) payableOrder(ctx context.Context, req Request) (*identity.Principal, *order.Order, error) {
	if a.verifier == nil {
		return nil, nil, errAuthConfig
	}

	principal, err := a.verifier.Verify(ctx, req.Token)
	if err != nil || principal == nil || principal.UserID == "" {
		if err != nil && !errors.Is(err, identity.ErrInvalidToken) {
			logger.FromContextOr(ctx, a.logger).Warn("token verification failed", zap.Error(err))
		}
		return nil, nil, errUnauthorized
	}

	if req.OrderID == "" {
		return principal, nil, errMissingOrder
	}

	o, err := a.orders.FindByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return principal, nil, errOrderNotFound
		}
		return principal, nil, wrapError(http.StatusInternalServerError, "Failed to load order", err)
	}

	if !o.OwnedBy(principal.UserID) {
		logger.FromContextOr(ctx, a.logger).Warn("checkout attempted on another user's order",
			zap.String("order_id", o.ID),
			zap.String("user_id", principal.UserID),
		)
		return principal, nil, errForbidden
	}

	switch err := o.CheckPayable(); {
	case errors.Is(err, order.ErrAlreadyPaid):
		return principal, nil, errAlreadyPaid
	case err != nil:
		return principal, nil, errInvalidAmount
	}

	return principal, o, nil
}

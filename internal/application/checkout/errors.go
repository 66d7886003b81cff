// Package checkout runs the payment flows of the storefront: starting a card
// checkout with a provider and applying provider callbacks to orders.
package checkout

import (
	"fmt"
	"net/http"
)

// Error is a failure with the HTTP status and plain-text message returned to
// the caller of a payment endpoint.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func wrapError(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, Err: err}
}

// Messages returned verbatim to clients
const (
	msgUnauthorized      = "Unauthorized"
	msgForbidden         = "Forbidden"
	msgMissingOrderID    = "Missing order_id"
	msgOrderNotFound     = "Order not found"
	msgInvalidAmount     = "Invalid amount"
	msgAlreadyPaid       = "Order already paid"
	msgMissingAuthConfig = "Missing SUPABASE_URL or SUPABASE_ANON_KEY"
	msgInvalidJSON       = "Invalid JSON"
	msgVerifyFailed      = "Failed to verify transaction"
)

var (
	errUnauthorized  = newError(http.StatusUnauthorized, msgUnauthorized)
	errForbidden     = newError(http.StatusForbidden, msgForbidden)
	errMissingOrder  = newError(http.StatusBadRequest, msgMissingOrderID)
	errOrderNotFound = newError(http.StatusNotFound, msgOrderNotFound)
	errInvalidAmount = newError(http.StatusBadRequest, msgInvalidAmount)
	errAlreadyPaid   = newError(http.StatusConflict, msgAlreadyPaid)
	errAuthConfig    = newError(http.StatusInternalServerError, msgMissingAuthConfig)
)

package shared

import "errors"

// DomainError is an error the admin API can show to the caller. Code selects
// the HTTP status; Message is safe to return verbatim.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError with the same code, so a copy with a more
// specific message still satisfies errors.Is against the sentinel.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// WithMessage returns a copy of e carrying message
func (e *DomainError) WithMessage(message string) *DomainError {
	return &DomainError{Code: e.Code, Message: message}
}

// ErrNotFound is returned by repositories when the row does not exist
var ErrNotFound = NewDomainError("NOT_FOUND", "Resource not found")

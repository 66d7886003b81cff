package dto

import "net/http"

// Error codes returned in ErrorInfo.Code. Every code has an entry in
// httpStatus.
const (
	ErrCodeInternal           = "ERR_INTERNAL"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"

	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"

	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	ErrCodeForbidden    = "ERR_FORBIDDEN"

	ErrCodeNotFound     = "ERR_NOT_FOUND"
	ErrCodeInvalidState = "ERR_INVALID_STATE"

	ErrCodeInvalidOrderID       = "ERR_INVALID_ORDER_ID"
	ErrCodeUnsupportedImageType = "ERR_UNSUPPORTED_IMAGE_TYPE"
	ErrCodeImageTooLarge        = "ERR_IMAGE_TOO_LARGE"
	ErrCodeInvalidImagePath     = "ERR_INVALID_IMAGE_PATH"
)

var httpStatus = map[string]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeInvalidState: http.StatusUnprocessableEntity,

	ErrCodeInvalidOrderID:       http.StatusBadRequest,
	ErrCodeUnsupportedImageType: http.StatusBadRequest,
	ErrCodeImageTooLarge:        http.StatusBadRequest,
	ErrCodeInvalidImagePath:     http.StatusBadRequest,
}

// GetHTTPStatus returns the status for code, 500 for codes it does not know.
func GetHTTPStatus(code string) int {
	if status, ok := httpStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode turns a bare domain code such as "NOT_FOUND" into its
// ERR_ form. Codes that are already prefixed, or unknown, pass through.
func NormalizeErrorCode(code string) string {
	if _, ok := httpStatus[code]; ok {
		return code
	}
	if prefixed := "ERR_" + code; httpStatus[prefixed] != 0 {
		return prefixed
	}
	return code
}

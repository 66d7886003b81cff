package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/interfaces/http/dto"
)

// FunctionBodyLimit caps request bodies of the payment functions and webhooks
const FunctionBodyLimit int64 = 64 << 10

// PayloadTooLargeMessage is the plain-text body of a 413 response
const PayloadTooLargeMessage = "Payload too large"

// BodyLimit returns a middleware that limits request body size.
// Oversized requests get a JSON error envelope.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRequestTooLarge,
				"Request body exceeds maximum allowed size",
				getRequestID(c),
			))
			return
		}

		// Wrap the body with a limited reader for streaming requests
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// TextBodyLimit is BodyLimit for plain-text endpoints.
// Bodies without a declared length are cut off by the reader; handlers
// report that through IsBodyTooLarge.
func TextBodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.String(http.StatusRequestEntityTooLarge, PayloadTooLargeMessage)
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// IsBodyTooLarge reports whether err comes from reading past a body limit
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

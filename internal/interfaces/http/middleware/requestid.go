// Package middleware holds the gin middleware in front of the storefront API.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

const (
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the gin context key, shared with the request logger
	RequestIDKey = "request_id"
	// MaxRequestIDLength caps client supplied ids before they reach logs and spans
	MaxRequestIDLength = 128
)

// RequestID echoes the caller's X-Request-ID or assigns a new UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		switch {
		case id == "":
			id = uuid.NewString()
		case len(id) > MaxRequestIDLength:
			id = id[:MaxRequestIDLength]
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the id set by RequestID, or the raw header when it did not run
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDHeader)
}

// abort stops the chain with an error envelope whose status follows from code
func abort(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code), dto.Fail(code, message, GetRequestID(c)))
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"

	requestIDKey    = "request_id"
	sessionTokenKey = "session_token"
)

// RequestID makes sure every request carries an X-Request-ID, generating one
// when the caller did not send it
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			c.Request.Header.Set(RequestIDHeader, id)
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// SessionToken extracts the bearer token from the Authorization header.
// Requests without one pass through with an empty token; the services
// refuse them.
func SessionToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionTokenKey, bearerToken(c.GetHeader("Authorization")))
		c.Next()
	}
}

// GetSessionToken returns the token stored by SessionToken
func GetSessionToken(c *gin.Context) string {
	return c.GetString(sessionTokenKey)
}

// GetRequestID returns the id stored by RequestID
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

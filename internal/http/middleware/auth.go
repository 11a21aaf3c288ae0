// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements bearer-token authentication for the admin API. Tokens
// are HS256 JWTs issued by the login endpoint; the middleware verifies the
// signature and expiry and stores the authenticated subject in the Gin
// context.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// subjectKey is the Gin context key under which the authenticated username is
// stored.
const subjectKey = "authSubject"

// AuthError is the JSON body returned on authentication failures. It mirrors
// the handlers.ErrorResponse envelope without importing the handlers package
// (which would create an import cycle).
type AuthError struct {
	RequestID string `json:"request_id,omitempty"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// IssueToken signs an HS256 JWT for subject, valid for ttl.
func IssueToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies an HS256 JWT and returns its subject. Only HS256 is
// accepted; tokens signed with any other method fail.
func ParseToken(secret, token string) (string, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &jwt.RegisteredClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return claims.Subject, nil
}

// RequireAuth returns a middleware that rejects requests without a valid
// bearer token. On success the token subject is available via SubjectFrom.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, "authentication required")
			return
		}
		subject, err := ParseToken(secret, token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		c.Set(subjectKey, subject)
		c.Next()
	}
}

// SubjectFrom returns the authenticated username stored by RequireAuth, or ""
// when the request is unauthenticated.
func SubjectFrom(c *gin.Context) string {
	if v, ok := c.Get(subjectKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(authz string) (string, bool) {
	parts := strings.Fields(authz)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, AuthError{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      "unauthorized",
		Message:   msg,
	})
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClaimsKey is the gin context key holding verified token claims.
const ClaimsKey = "claims"

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// AnyVerifier tries each verifier in order and accepts the first success.
type AnyVerifier []Verifier

func (a AnyVerifier) Verify(ctx context.Context, raw string) (Token, error) {
	var lastErr error
	for _, v := range a {
		tok, err := v.Verify(ctx, raw)
		if err == nil {
			return tok, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using the provided verifier
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ClaimsKey); ok {
			c.Next()
			return
		}
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		token, ok := bearer(auth)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		idToken, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		var claims map[string]interface{}
		if err := idToken.Claims(&claims); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "failed to parse claims"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// IdentifyMiddleware stores the claims of a valid Bearer token and lets every
// request through. It runs ahead of the rate limiter so authenticated callers
// are keyed by subject; AuthMiddleware still guards protected routes.
func IdentifyMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearer(c.GetHeader("Authorization")); ok {
			if idToken, err := ver.Verify(c.Request.Context(), token); err == nil {
				var claims map[string]interface{}
				if idToken.Claims(&claims) == nil {
					c.Set(ClaimsKey, claims)
				}
			}
		}
		c.Next()
	}
}

func bearer(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

// subject returns the authenticated subject, if any.
func subject(c *gin.Context) string {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return ""
	}
	cm, ok := v.(map[string]interface{})
	if !ok {
		return ""
	}
	sub, _ := cm["sub"].(string)
	return sub
}

// limiterKey prefers the authenticated subject and falls back to client IP.
func limiterKey(c *gin.Context) string {
	if sub := subject(c); sub != "" {
		return "sub:" + sub
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

package api

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"partnerhub/internal/metrics"
	"partnerhub/internal/ratelimit"
	"partnerhub/internal/service"

	"github.com/gin-gonic/gin"
)

// PrincipalHeader lets an admin-token request act as a named principal.
// It is ignored on every other request.
const PrincipalHeader = "X-Principal"

// TokenAuthenticator resolves principal tokens to callers.
type TokenAuthenticator interface {
	AuthenticateToken(ctx context.Context, token string) (service.Caller, error)
}

// Authenticate attaches the caller to the request context. The admin token
// makes an admin; any other bearer must be a principal token. Requests
// without a bearer run as guests.
func Authenticate(adminToken string, tokens TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var caller service.Caller

		if token := bearerToken(c.GetHeader("Authorization")); token != "" {
			if adminToken != "" && subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) == 1 {
				caller = service.Caller{Admin: true, Principal: strings.TrimSpace(c.GetHeader(PrincipalHeader))}
				if caller.Principal == "" {
					caller.Principal = "admin"
				}
			} else {
				resolved, err := tokens.AuthenticateToken(c.Request.Context(), token)
				if err != nil {
					respondError(c, err)
					return
				}
				caller = resolved
			}
		}

		c.Request = c.Request.WithContext(service.WithCaller(c.Request.Context(), caller))
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// RateLimit refuses requests once the client IP exhausts its bucket.
func RateLimit(l *ratelimit.MapLimiter, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP(), time.Now()) {
			metrics.RateLimited.WithLabelValues(name).Inc()
			respondError(c, service.ErrRateLimited)
			return
		}
		c.Next()
	}
}

// CORS allows the SPA and the console to call the API from any origin.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+PrincipalHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

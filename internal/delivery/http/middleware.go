package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lauraluxe/backend/internal/infrastructure/session"
)

// SessionHeader carries the browsing-session identifier. The middleware
// echoes it back so a fresh client learns the id it was issued.
const SessionHeader = "X-Session-ID"

const sessionContextKey = "session"

// SessionMiddleware attaches the caller's browsing session to the request
// context, issuing a new session when the header is absent or expired.
func SessionMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := store.GetOrCreate(c.GetHeader(SessionHeader))
		c.Set(sessionContextKey, sess)
		c.Writer.Header().Set(SessionHeader, sess.ID)
		c.Next()
	}
}

// sessionFrom returns the session attached by SessionMiddleware.
func sessionFrom(c *gin.Context) *session.Session {
	return c.MustGet(sessionContextKey).(*session.Session)
}

// CORSMiddleware handles CORS for the storefront frontend
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Check if origin is allowed
		if isAllowedOrigin(origin, allowedOrigins) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, "+SessionHeader)
			c.Writer.Header().Set("Access-Control-Expose-Headers", SessionHeader)
			c.Writer.Header().Set("Access-Control-Max-Age", "3600")
		}

		// Handle preflight requests
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isAllowedOrigin checks if the origin is in the allowed list
func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		// Support wildcard matching for http://localhost:*
		if strings.HasSuffix(allowed, "*") {
			prefix := strings.TrimSuffix(allowed, "*")
			if strings.HasPrefix(origin, prefix) {
				return true
			}
		} else if origin == allowed {
			return true
		}
	}
	return false
}

// LoggerMiddleware logs requests (simple version for now)
func LoggerMiddleware() gin.HandlerFunc {
	return gin.Logger()
}

// RecoveryMiddleware recovers from panics
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.Recovery()
}

package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsMethods lists the verbs the router actually serves
const corsMethods = "GET, POST, DELETE, OPTIONS"

// CORSMiddleware admits the configured browser origins. Origins outside
// the list get no CORS headers at all; the browser enforces the rest.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if isAllowedOrigin(origin, allowedOrigins) {
			header := c.Writer.Header()
			header.Set("Access-Control-Allow-Origin", origin)
			header.Set("Access-Control-Allow-Methods", corsMethods)
			header.Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With")
			header.Set("Access-Control-Max-Age", "3600")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isAllowedOrigin matches an origin against the configured list. A
// trailing "*" matches any suffix, which covers dev-server entries like
// http://localhost:* where the port changes run to run.
func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range allowedOrigins {
		if prefix, wildcard := strings.CutSuffix(allowed, "*"); wildcard {
			if strings.HasPrefix(origin, prefix) {
				return true
			}
			continue
		}
		if origin == allowed {
			return true
		}
	}
	return false
}

// LoggerMiddleware logs requests
func LoggerMiddleware() gin.HandlerFunc {
	return gin.Logger()
}

// RecoveryMiddleware recovers from panics
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.Recovery()
}

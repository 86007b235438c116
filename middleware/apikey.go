package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidateAPIKey guards admin-only routes (product takedowns). The key
// is a construction parameter; an empty key disables the admin surface
// entirely rather than leaving it open.
func ValidateAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access is disabled"})
			c.Abort()
			return
		}
		provided := c.GetHeader("X-API-KEY")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			c.Abort()
			return
		}
		c.Next()
	}
}

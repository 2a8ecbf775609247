package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const canWriteKey = "can_write"

// APIKey marks requests carrying "Authorization: Bearer <key>" as writers.
// With an empty key every request is a writer. It never rejects a request;
// RequireWriter does that on the routes that need it.
func APIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Set(canWriteKey, true)
			c.Next()
			return
		}

		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" &&
			subtle.ConstantTimeCompare([]byte(parts[1]), []byte(key)) == 1 {
			c.Set(canWriteKey, true)
		}

		c.Next()
	}
}

func RequireWriter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CanWrite(c) {
			c.Next()
			return
		}

		if c.GetHeader("Authorization") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
		} else {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
		}
		c.Abort()
	}
}

// CanWrite reports whether APIKey accepted the request.
func CanWrite(c *gin.Context) bool {
	return c.GetBool(canWriteKey)
}

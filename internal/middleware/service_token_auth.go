package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ServiceTokenAuth guards the fetch trigger with a pre-issued bearer token.
// The scheduler that invokes the endpoint sends it as
// "Authorization: Bearer <token>". An empty configured token disables the
// check, which keeps local development friction-free.
func ServiceTokenAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		presented, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rejected request with missing or invalid service token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Next()
	}
}

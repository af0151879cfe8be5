package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminAuth gates the operator listing behind a single shared token, presented
// either as X-Admin-Token or as a bearer Authorization value. An empty server
// token rejects everything: listing stays locked until ADMIN_TOKEN is set.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader("X-Admin-Token")
		if presented == "" {
			presented = bearer(c.GetHeader("Authorization"))
		}
		if token == "" || presented != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// bearer strips a case-insensitive "Bearer " prefix, returning the raw header
// when no prefix is present.
func bearer(h string) string {
	if len(h) >= 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return h
}

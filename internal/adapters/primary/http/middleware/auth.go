package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"m365-dashboard/internal/core/services"
)

// ContextUserKey holds the authenticated username in the gin context.
const ContextUserKey = "user"

// Auth guards dashboard routes behind a valid session token carried as
// "Authorization: Bearer <token>".
func Auth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		username, err := auth.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserKey, username)
		c.Next()
	}
}

// internal/middleware/auth.go
// Authentication middleware validates JWT tokens and sets user context

package middleware

import (
	"net/http"
	"strings"

	"srcomp/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireAdmin validates that a request carries a valid JWT for the admin
// account. There's only one protected role in this system: the admin
// mutating delays, reloads and award overrides. Everything else (schedule,
// scores, awards) is public.
func RequireAdmin(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			c.Abort()
			return
		}

		username, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("admin_username", username)
		c.Set("authenticated", true)

		c.Next()
	}
}

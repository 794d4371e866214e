// ========================================
// internal/middleware/rate_limiter.go
// Rate limiting for admin mutation endpoints

package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/gin-gonic/gin"
)

// AdminRateLimiter throttles the admin mutation endpoints (delays, reload,
// award overrides) with a single shared token bucket -- there is one admin
// account, so there is no per-client key to partition on.
func AdminRateLimiter(requestsPerSecond float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded, slow down"})
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bme-guide/pkg/logger"
)

// RateLimitMiddleware limits requests per client IP. A nil manager disables it.
func RateLimitMiddleware(manager *RateLimitManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if manager == nil {
			c.Next()
			return
		}

		limiter := manager.Visitor(c.ClientIP())
		if limiter == nil {
			c.Next()
			return
		}

		if !limiter.Allow() {
			logger.WithContext(c.Request.Context()).WithField("ip", c.ClientIP()).Warn("Rate limit exceeded")
			c.String(http.StatusTooManyRequests, "יותר מדי בקשות, נסו שוב בעוד רגע")
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"

	"bme-guide/internal/course"
	"bme-guide/pkg/logger"
)

// CourseContextMiddleware makes the provider's course context available to
// every handler below it. A provider error is logged and the request continues
// without a context.
func CourseContextMiddleware(provider course.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if provider == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		value, err := provider.CourseContext(ctx)
		if err != nil {
			logger.WithContext(ctx).WithError(err).Warn("Course context unavailable")
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(course.WithContext(ctx, value))
		c.Next()
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"

	"bme-guide/internal/sidebar"
)

// SidebarStateMiddleware resolves the panel state from the request cookie and
// stores it in the request context.
func SidebarStateMiddleware(opts sidebar.CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := sidebar.FromRequest(c.Writer, c.Request, opts)
		c.Request = c.Request.WithContext(sidebar.WithState(c.Request.Context(), state))
		c.Next()
	}
}

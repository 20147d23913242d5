package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"bme-guide/pkg/logger"
)

var stateChangingMethods = map[string]struct{}{
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

// SameOriginMiddleware rejects state changing requests that a browser sent
// from another site. Requests carrying neither Origin nor Referer are let
// through.
func SameOriginMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, shouldCheck := stateChangingMethods[c.Request.Method]; !shouldCheck {
			c.Next()
			return
		}

		if !sameOrigin(c.Request) {
			logger.WithContext(c.Request.Context()).WithFields(map[string]interface{}{
				"origin":  c.GetHeader("Origin"),
				"referer": c.GetHeader("Referer"),
			}).Warn("Cross-site request rejected")
			c.String(http.StatusForbidden, "%d - %s", http.StatusForbidden, "Cross-site request rejected")
			c.Abort()
			return
		}
		c.Next()
	}
}

func sameOrigin(r *http.Request) bool {
	if strings.EqualFold(r.Header.Get("Sec-Fetch-Site"), "cross-site") {
		return false
	}

	source := strings.TrimSpace(r.Header.Get("Origin"))
	if source == "" {
		source = strings.TrimSpace(r.Header.Get("Referer"))
		if source == "" {
			return true
		}
	}

	parsed, err := url.Parse(source)
	if err != nil || parsed.Host == "" {
		return false
	}
	return strings.EqualFold(parsed.Host, r.Host)
}

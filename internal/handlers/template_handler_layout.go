package handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"bme-guide/internal/shell"
	"bme-guide/internal/sidebar"
	"bme-guide/pkg/logger"
)

// currentRoute reports the raw request path. Navigation matching is exact, so
// the path is not cleaned.
func currentRoute(c *gin.Context) shell.Router {
	return shell.RouterFunc(func() string {
		return c.Request.URL.Path
	})
}

func sidebarState(c *gin.Context) sidebar.State {
	state, err := sidebar.FromContext(c.Request.Context())
	if err != nil {
		return nil
	}
	return state
}

func (h *TemplateHandler) renderWithLayout(c *gin.Context, status int, page string) {
	ctx := c.Request.Context()

	children, err := h.pages.Render(ctx, page, c.Request.URL.Path)
	if err != nil {
		logger.Error(err, "Failed to render content", map[string]interface{}{"page": page})
		h.renderError(c, http.StatusInternalServerError, "Failed to render content")
		return
	}

	output, err := h.executeLayout(c, page, children)
	if err != nil {
		logger.Error(err, "Failed to render layout", map[string]interface{}{"page": page})
		h.renderError(c, http.StatusInternalServerError, "Failed to render layout")
		return
	}

	c.Data(status, "text/html; charset=utf-8", output)
}

func (h *TemplateHandler) executeLayout(c *gin.Context, page string, children template.HTML) ([]byte, error) {
	var buf bytes.Buffer
	props := shell.Props{Children: children, CurrentPageName: page}
	if err := h.shell.Render(&buf, props, currentRoute(c), sidebarState(c)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

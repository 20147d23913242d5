package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bme-guide/internal/pages"
	"bme-guide/pkg/navigation"
)

func (h *TemplateHandler) RenderIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, navigation.PageURL(navigation.PageHome))
}

// RenderPage returns a handler rendering the named page fragment.
func (h *TemplateHandler) RenderPage(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.renderWithLayout(c, http.StatusOK, name)
	}
}

// NotFound renders the not found fragment inside the shell.
func (h *TemplateHandler) NotFound(c *gin.Context) {
	h.renderWithLayout(c, http.StatusNotFound, pages.NotFound)
}

func (h *TemplateHandler) renderError(c *gin.Context, status int, msg string) {
	c.String(status, "%d - %s", status, msg)
}

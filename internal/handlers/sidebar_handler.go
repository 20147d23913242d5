package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"bme-guide/internal/sidebar"
	"bme-guide/pkg/logger"
	"bme-guide/pkg/utils"
	"bme-guide/pkg/validator"
)

type toggleRequest struct {
	ReturnTo string `form:"return_to" binding:"omitempty,route"`
}

// ToggleObserver is notified after every toggle.
type ToggleObserver interface {
	ObserveToggle(open bool)
}

type SidebarHandler struct {
	observer ToggleObserver
}

func NewSidebarHandler(observer ToggleObserver) *SidebarHandler {
	validator.Init()
	return &SidebarHandler{observer: observer}
}

// Toggle flips the panel state and redirects back to the submitting page.
func (h *SidebarHandler) Toggle(c *gin.Context) {
	state, err := sidebar.FromContext(c.Request.Context())
	if err != nil {
		logger.Error(err, "Sidebar state missing", nil)
		c.String(http.StatusInternalServerError, "%d - %s", http.StatusInternalServerError, "Sidebar state unavailable")
		return
	}

	open := sidebar.Toggle(state)
	if h.observer != nil {
		h.observer.ObserveToggle(open)
	}

	logger.WithContext(c.Request.Context()).WithField("open", open).Debug("Sidebar toggled")
	c.Redirect(http.StatusSeeOther, returnTo(c))
}

// returnTo resolves the redirect target. Anything that is not an in-site
// route path falls back to the root.
func returnTo(c *gin.Context) string {
	var req toggleRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		logger.WithContext(c.Request.Context()).WithError(err).Debug("Rejected sidebar return target")
		return "/"
	}
	if req.ReturnTo == "" {
		return "/"
	}
	return utils.NormalizePath(req.ReturnTo)
}

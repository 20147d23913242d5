package handlers

import (
	"errors"

	"bme-guide/internal/pages"
	"bme-guide/internal/shell"
)

// TemplateHandler renders routed pages inside the application shell.
type TemplateHandler struct {
	shell *shell.Shell
	pages *pages.Loader
}

func NewTemplateHandler(layout *shell.Shell, loader *pages.Loader) (*TemplateHandler, error) {
	if layout == nil {
		return nil, errors.New("shell is required")
	}
	if loader == nil {
		return nil, errors.New("page loader is required")
	}

	return &TemplateHandler{
		shell: layout,
		pages: loader,
	}, nil
}

// Package pages renders the content fragments placed in the shell's content
// slot.
package pages

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"bme-guide/internal/course"
	"bme-guide/pkg/logger"
	"bme-guide/pkg/utils"
	"bme-guide/pkg/validator"
)

//go:embed content/*.html
var contentFS embed.FS

const NotFound = "NotFound"

var ErrUnknownPage = errors.New("unknown page")

// Data is passed to every fragment template.
type Data struct {
	Page   string
	Path   string
	Course course.Context
}

// Loader renders bundled fragments, preferring operator supplied overrides.
type Loader struct {
	templates *template.Template
	overrides map[string]template.HTML
}

// NewLoader parses the bundled fragments and, when overrideDir is set, reads
// <Page>.html files from it. Overrides are sanitised and rendered as static
// markup.
func NewLoader(overrideDir string) (*Loader, error) {
	tmpl, err := utils.LoadTemplates(contentFS, "content/*.html", "", utils.GetTemplateFuncs())
	if err != nil {
		return nil, fmt.Errorf("pages: %w", err)
	}

	loader := &Loader{
		templates: tmpl,
		overrides: make(map[string]template.HTML),
	}

	if strings.TrimSpace(overrideDir) == "" {
		return loader, nil
	}

	if err := loader.loadOverrides(os.DirFS(overrideDir)); err != nil {
		return nil, err
	}
	return loader, nil
}

func (l *Loader) loadOverrides(fsys fs.FS) error {
	for _, name := range l.Names() {
		data, err := fs.ReadFile(fsys, name+".html")
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("pages: read override %s: %w", name, err)
		}

		l.overrides[name] = template.HTML(validator.SanitizeHTML(string(data)))
		logger.Info("Loaded page override", map[string]interface{}{"page": name})
	}
	return nil
}

// Names lists the pages that have a bundled fragment.
func (l *Loader) Names() []string {
	var names []string
	for _, t := range l.templates.Templates() {
		name := t.Name()
		if filepath.Ext(name) != ".html" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".html"))
	}
	return names
}

// Render returns the fragment for page. The course context, when present in
// ctx, is exposed to the template.
func (l *Loader) Render(ctx context.Context, page, path string) (template.HTML, error) {
	if override, ok := l.overrides[page]; ok {
		return override, nil
	}

	tmpl := l.templates.Lookup(page + ".html")
	if tmpl == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownPage, page)
	}

	data := Data{Page: page, Path: path}
	if value, err := course.FromContext(ctx); err == nil {
		data.Course = value
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render page %s: %w", page, err)
	}

	return template.HTML(buf.String()), nil
}

// Package shell renders the application layout: the navigation panel, the
// responsive headers and the content slot holding a page's own markup.
package shell

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"

	"bme-guide/internal/sidebar"
	"bme-guide/internal/theme"
	"bme-guide/pkg/navigation"
	"bme-guide/pkg/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutTemplate      = "layout.html"
	DefaultToggleAction = "/sidebar/toggle"
	DefaultToggleLabel  = "הצגה או הסתרה של התפריט"
)

// Router exposes the current route path.
type Router interface {
	CurrentPath() string
}

// RouterFunc adapts a function to Router.
type RouterFunc func() string

func (f RouterFunc) CurrentPath() string {
	return f()
}

// StaticRouter always reports the same path.
type StaticRouter string

func (r StaticRouter) CurrentPath() string {
	return string(r)
}

type Brand struct {
	Title      string
	ShortTitle string
	Subtitle   string
}

type Options struct {
	Brand         Brand
	Stylesheet    *theme.Stylesheet
	Entries       []navigation.Entry
	StylesheetURL string
	ToggleAction  string
	ToggleLabel   string
}

// Props is the caller supplied input of a render.
type Props struct {
	Children        template.HTML
	CurrentPageName string
}

type Shell struct {
	templates *template.Template
	style     *theme.Stylesheet
	entries   []navigation.Entry
	opts      Options
}

// New parses the layout templates. The stylesheet must already be registered.
func New(opts Options) (*Shell, error) {
	if opts.Stylesheet == nil || opts.Stylesheet.CSS() == "" {
		return nil, errors.New("shell: stylesheet is not registered")
	}

	entries := opts.Entries
	if entries == nil {
		entries = navigation.Entries()
	}
	if err := navigation.Validate(entries); err != nil {
		return nil, fmt.Errorf("shell: %w", err)
	}

	if opts.ToggleAction == "" {
		opts.ToggleAction = DefaultToggleAction
	}
	if opts.ToggleLabel == "" {
		opts.ToggleLabel = DefaultToggleLabel
	}
	tmpl, err := utils.LoadTemplates(templateFS, "templates/*.html", layoutTemplate, utils.GetTemplateFuncs())
	if err != nil {
		return nil, fmt.Errorf("shell: %w", err)
	}

	return &Shell{
		templates: tmpl,
		style:     opts.Stylesheet,
		entries:   append([]navigation.Entry(nil), entries...),
		opts:      opts,
	}, nil
}

// View builds the full view model for a render without executing templates.
func (s *Shell) View(props Props, router Router, state sidebar.State) View {
	route := ""
	if router != nil {
		route = router.CurrentPath()
	}

	open := true
	if state != nil {
		open = state.Open()
	}

	view := BuildView(route, props.CurrentPageName, s.entries, open)

	tokens := s.style.Tokens()
	view.Language = tokens.Language
	view.Direction = tokens.Direction
	view.Style = s.style.CSS()
	view.StylesheetURL = s.opts.StylesheetURL
	view.Brand = s.opts.Brand
	view.Toggle.Action = s.opts.ToggleAction
	view.Toggle.Label = s.opts.ToggleLabel
	view.Children = props.Children

	view.Title = s.opts.Brand.Title
	if view.ActiveIndex >= 0 {
		view.Title = view.Navigation[view.ActiveIndex].Title + " | " + s.opts.Brand.Title
	}

	return view
}

// Render writes the full page for props to w.
func (s *Shell) Render(w io.Writer, props Props, router Router, state sidebar.State) error {
	view := s.View(props, router, state)

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, layoutTemplate, view); err != nil {
		return fmt.Errorf("render layout: %w", err)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	return nil
}

// Entries returns the navigation entries this shell renders.
func (s *Shell) Entries() []navigation.Entry {
	return append([]navigation.Entry(nil), s.entries...)
}

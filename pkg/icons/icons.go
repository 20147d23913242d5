// Package icons holds the inline SVG symbols used by the shell. The artwork
// follows the Lucide icon set (ISC licensed), stroke based on a 24x24 grid.
package icons

import (
	"errors"
	"fmt"
	"html"
	"html/template"
)

// Name is a symbolic icon reference such as "home".
type Name string

const (
	Home           Name = "home"
	Activity       Name = "activity"
	GraduationCap  Name = "graduation-cap"
	PanelLeftOpen  Name = "panel-left-open"
	PanelRightOpen Name = "panel-right-open"
	Menu           Name = "menu"
	ListChecks     Name = "list-checks"
)

var ErrUnknownIcon = errors.New("unknown icon")

var symbols = map[Name]string{
	Home:           `<path d="M15 21v-8a1 1 0 0 0-1-1h-4a1 1 0 0 0-1 1v8"/><path d="M3 10a2 2 0 0 1 .709-1.528l7-5.999a2 2 0 0 1 2.582 0l7 5.999A2 2 0 0 1 21 10v9a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2z"/>`,
	Activity:       `<path d="M22 12h-2.48a2 2 0 0 0-1.93 1.46l-2.35 8.36a.25.25 0 0 1-.48 0L9.24 2.18a.25.25 0 0 0-.48 0l-2.35 8.36A2 2 0 0 1 4.49 12H2"/>`,
	GraduationCap:  `<path d="M21.42 10.922a1 1 0 0 0-.019-1.838L12.83 5.18a2 2 0 0 0-1.66 0L2.6 9.08a1 1 0 0 0 0 1.832l8.57 3.908a2 2 0 0 0 1.66 0z"/><path d="M22 10v6"/><path d="M6 12.5V16a6 3 0 0 0 12 0v-3.5"/>`,
	PanelLeftOpen:  `<rect width="18" height="18" x="3" y="3" rx="2"/><path d="M9 3v18"/><path d="m14 9 3 3-3 3"/>`,
	PanelRightOpen: `<rect width="18" height="18" x="3" y="3" rx="2"/><path d="M15 3v18"/><path d="m10 15-3-3 3-3"/>`,
	Menu:           `<line x1="4" x2="20" y1="12" y2="12"/><line x1="4" x2="20" y1="6" y2="6"/><line x1="4" x2="20" y1="18" y2="18"/>`,
	ListChecks:     `<path d="m3 17 2 2 4-4"/><path d="m3 7 2 2 4-4"/><path d="M13 6h8"/><path d="M13 12h8"/><path d="M13 18h8"/>`,
}

// Known reports whether name has registered artwork.
func Known(name Name) bool {
	_, ok := symbols[name]
	return ok
}

// Render returns the inline SVG for name. The class attribute is escaped; the
// element is hidden from assistive technology since every use sits next to a
// text label or inside a labelled button.
func Render(name Name, class string) (template.HTML, error) {
	body, ok := symbols[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownIcon, string(name))
	}

	markup := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" class="icon icon-%s %s" aria-hidden="true" data-icon="%s">%s</svg>`,
		string(name), html.EscapeString(class), string(name), body,
	)
	return template.HTML(markup), nil
}

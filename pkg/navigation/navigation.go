// Package navigation defines the static side panel entries and the pure
// route matching used to highlight the active one.
package navigation

import (
	"fmt"
	"strings"

	"bme-guide/pkg/icons"
	"bme-guide/pkg/validator"
)

// Entry is a link rendered in the side panel.
type Entry struct {
	Title string     `validate:"required,no_html"`
	URL   string     `validate:"required,route"`
	Icon  icons.Name `validate:"required,slug"`
}

const (
	// BaseClass is applied to every entry regardless of state.
	BaseClass = "hover:bg-blue-50 hover:text-blue-700 transition-all duration-200 rounded-xl mb-1"
	// ActiveClass is applied to the entry whose URL equals the current route.
	ActiveClass = "bg-blue-50 text-blue-700 shadow-sm"
	// InactiveClass is applied to every other entry.
	InactiveClass = "text-slate-600"
)

const (
	PageHome            = "Home"
	PageProgressTracker = "ProgressTracker"
)

var entries = mustEntries([]Entry{
	{
		Title: "עמוד הבית",
		URL:   PageURL(PageHome),
		Icon:  icons.Home,
	},
	{
		Title: "מעקב התקדמות",
		URL:   PageURL(PageProgressTracker),
		Icon:  icons.Activity,
	},
})

// PageURL maps a logical page name to its route path.
func PageURL(pageName string) string {
	return "/" + strings.ReplaceAll(strings.TrimSpace(pageName), " ", "-")
}

// Entries returns a copy of the static entry list.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// ActiveIndex returns the index of the entry whose URL is exactly route, or
// -1 when none matches. No prefix matching or normalisation is applied.
func ActiveIndex(route string, list []Entry) int {
	for i, entry := range list {
		if entry.URL == route {
			return i
		}
	}
	return -1
}

// ClassFor returns the full class attribute for an entry in the given state.
func ClassFor(active bool) string {
	if active {
		return BaseClass + " " + ActiveClass
	}
	return BaseClass + " " + InactiveClass
}

// Validate checks every entry against its struct rules and confirms that each
// icon has artwork and each URL is unique.
func Validate(list []Entry) error {
	seen := make(map[string]struct{}, len(list))
	for i, entry := range list {
		if err := validator.Validate(entry); err != nil {
			return fmt.Errorf("navigation entry %d: %w", i, err)
		}
		if !icons.Known(entry.Icon) {
			return fmt.Errorf("navigation entry %d: %w: %q", i, icons.ErrUnknownIcon, string(entry.Icon))
		}
		if _, dup := seen[entry.URL]; dup {
			return fmt.Errorf("navigation entry %d: duplicate url %q", i, entry.URL)
		}
		seen[entry.URL] = struct{}{}
	}
	return nil
}

func mustEntries(list []Entry) []Entry {
	if err := Validate(list); err != nil {
		panic(err)
	}
	return list
}

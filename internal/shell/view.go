package shell

import (
	"html/template"

	"bme-guide/pkg/icons"
	"bme-guide/pkg/navigation"
)

const (
	StateExpanded  = "expanded"
	StateCollapsed = "collapsed"
)

// NavItem is a navigation entry resolved against the current route.
type NavItem struct {
	Title  string
	URL    string
	Icon   icons.Name
	Active bool
	Class  string
}

// ToggleView drives the desktop header button.
type ToggleView struct {
	Action   string
	ReturnTo string
	Label    string
	Icon     icons.Name
}

// View is everything the layout template needs.
type View struct {
	Title         string
	PageName      string
	Language      string
	Direction     string
	Style         template.CSS
	StylesheetURL string
	Brand         Brand

	Navigation  []NavItem
	ActiveIndex int

	SidebarOpen  bool
	SidebarState string
	Toggle       ToggleView

	Children template.HTML
}

// ToggleIcon returns the icon shown by the desktop toggle for the given
// panel state.
func ToggleIcon(open bool) icons.Name {
	if open {
		return icons.PanelRightOpen
	}
	return icons.PanelLeftOpen
}

// BuildView resolves route and panel state against entries. It is pure: the
// result depends only on its arguments.
func BuildView(route, pageName string, entries []navigation.Entry, open bool) View {
	active := navigation.ActiveIndex(route, entries)

	items := make([]NavItem, len(entries))
	for i, entry := range entries {
		isActive := i == active
		items[i] = NavItem{
			Title:  entry.Title,
			URL:    entry.URL,
			Icon:   entry.Icon,
			Active: isActive,
			Class:  navigation.ClassFor(isActive),
		}
	}

	state := StateCollapsed
	if open {
		state = StateExpanded
	}

	return View{
		PageName:     pageName,
		Navigation:   items,
		ActiveIndex:  active,
		SidebarOpen:  open,
		SidebarState: state,
		Toggle: ToggleView{
			ReturnTo: route,
			Icon:     ToggleIcon(open),
		},
	}
}

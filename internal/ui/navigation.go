// Package ui holds the interactive state of the portfolio page: the
// navigation menu, the projects disclosure and the contact intent builder.
// Nothing here knows about HTTP; the rendering surface and the mail handoff
// are reached through small ports.
package ui

// Section is one addressable region of the page.
type Section struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// Catalog is the ordered, read-only list of sections shown in the nav bar.
type Catalog struct {
	sections []Section
	index    map[string]int
}

// NewCatalog copies sections into a catalog. Later duplicates of an id are
// ignored; content validation rejects them before this point.
func NewCatalog(sections []Section) Catalog {
	c := Catalog{index: make(map[string]int, len(sections))}
	for _, s := range sections {
		if _, dup := c.index[s.ID]; dup {
			continue
		}
		c.index[s.ID] = len(c.sections)
		c.sections = append(c.sections, s)
	}
	return c
}

// Sections returns a copy of the catalog in display order.
func (c Catalog) Sections() []Section {
	out := make([]Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// Has reports whether id names a section in the catalog.
func (c Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Len returns the number of sections.
func (c Catalog) Len() int { return len(c.sections) }

// Surface is the rendering side of the page.
type Surface interface {
	HasRegion(id string) bool
	// ScrollIntoView brings the region into view with smooth scrolling.
	ScrollIntoView(id string)
}

// NavigationState is the mobile menu flag. The zero value is the page-load
// state.
type NavigationState struct {
	MenuOpen bool
}

// Navigation owns the mobile menu flag and the scroll target.
type Navigation struct {
	state   NavigationState
	surface Surface
}

// NewNavigation resumes a controller from a stored state.
func NewNavigation(state NavigationState, surface Surface) *Navigation {
	return &Navigation{state: state, surface: surface}
}

// State returns the current state for rendering or storage.
func (n *Navigation) State() NavigationState { return n.state }

// ToggleMenu flips the mobile menu.
func (n *Navigation) ToggleMenu() {
	n.state.MenuOpen = !n.state.MenuOpen
}

// NavigateTo scrolls to the region id and closes the menu. An id with no
// matching region is ignored and leaves the state as it was.
func (n *Navigation) NavigateTo(id string) bool {
	if n.surface == nil || !n.surface.HasRegion(id) {
		return false
	}
	n.surface.ScrollIntoView(id)
	n.state.MenuOpen = false
	return true
}

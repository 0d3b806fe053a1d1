// Package ui holds the state of the small interactive widgets: the FAQ
// accordion, the CV dropdown and the count-up statistics.
package ui

import "strconv"

// Accordion keeps at most one item expanded.
type Accordion struct {
	active int
	open   bool
}

// NewAccordion starts with every item collapsed.
func NewAccordion() *Accordion { return &Accordion{} }

// Toggle expands item i, or collapses it if it is already the expanded one.
func (a *Accordion) Toggle(i int) {
	if a.open && a.active == i {
		a.open = false
		return
	}
	a.active, a.open = i, true
}

// Open returns the expanded index, if any.
func (a *Accordion) Open() (int, bool) {
	return a.active, a.open
}

func (a *Accordion) IsOpen(i int) bool {
	return a.open && a.active == i
}

// ToggleHref returns the query fragment that toggles item i from the current
// state, for pages rendered without script.
func (a *Accordion) ToggleHref(i int) string {
	if a.IsOpen(i) {
		return "?"
	}
	return "?open=" + strconv.Itoa(i)
}

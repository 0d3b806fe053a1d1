package router

import "sync"

// Scroller moves the page viewport.
type Scroller interface {
	ScrollToTop()
}

// Navigator owns the active path of one session.
type Navigator struct {
	mu        sync.Mutex
	table     *Table
	scroller  Scroller
	current   string
	match     Match
	nextID    int
	listeners map[int]func(Match)
}

func NewNavigator(table *Table, scroller Scroller) *Navigator {
	return &Navigator{table: table, scroller: scroller, listeners: make(map[int]func(Match))}
}

// Current returns the active path and its match. The path is empty before the
// first navigation.
func (n *Navigator) Current() (string, Match) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.match
}

// Navigate makes path the active route. Scroll-to-top and the change listeners
// run only when the path actually changes; revisiting the same path is a
// re-render and does nothing. It reports whether the route changed.
func (n *Navigator) Navigate(path string) (Match, bool) {
	path = Clean(path)

	n.mu.Lock()
	if path == n.current {
		m := n.match
		n.mu.Unlock()
		return m, false
	}
	first := n.current == ""
	n.current = path
	n.match = n.table.Resolve(path)
	m := n.match
	listeners := make([]func(Match), 0, len(n.listeners))
	for i := 0; i < n.nextID; i++ {
		if fn, ok := n.listeners[i]; ok {
			listeners = append(listeners, fn)
		}
	}
	n.mu.Unlock()

	if !first && n.scroller != nil {
		n.scroller.ScrollToTop()
	}
	for _, fn := range listeners {
		fn(m)
	}
	return m, true
}

// OnChange registers fn to run after every route change.
func (n *Navigator) OnChange(fn func(Match)) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	return func() {
		n.mu.Lock()
		delete(n.listeners, id)
		n.mu.Unlock()
	}
}

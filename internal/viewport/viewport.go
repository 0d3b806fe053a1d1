// Package viewport classifies the visitor's reported window width against fixed
// breakpoints and keeps subscribers informed when a breakpoint flips.
package viewport

import "sync"

// Breakpoints in CSS pixels.
const (
	MobileMaxWidth = 768
	TabletMaxWidth = 1024
)

var (
	Mobile = Query{MaxWidth: MobileMaxWidth}
	Tablet = Query{MaxWidth: TabletMaxWidth}
)

// Query is a max-width media query.
type Query struct {
	MaxWidth int
}

// Match reports whether width satisfies the query. Unknown widths (<= 0) never match.
func (q Query) Match(width int) bool {
	return width > 0 && width <= q.MaxWidth
}

type subscriber struct {
	id int
	fn func(width int)
}

// Window tracks the last width reported for one visitor.
type Window struct {
	mu     sync.Mutex
	width  int
	nextID int
	subs   []subscriber
}

// NewWindow returns a window with an initial width; pass 0 when unknown.
func NewWindow(width int) *Window {
	if width < 0 {
		width = 0
	}
	return &Window{width: width}
}

// Width returns the current width, 0 when unknown.
func (w *Window) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

// Resize records a new width and notifies subscribers in subscription order.
// Subscribers removed during notification still see this event.
func (w *Window) Resize(width int) {
	if width < 0 {
		width = 0
	}
	w.mu.Lock()
	if width == w.width {
		w.mu.Unlock()
		return
	}
	w.width = width
	subs := make([]subscriber, len(w.subs))
	copy(subs, w.subs)
	w.mu.Unlock()

	for _, s := range subs {
		s.fn(width)
	}
}

// Subscribe registers fn for resize events. The returned func releases it and is
// safe to call more than once.
func (w *Window) Subscribe(fn func(width int)) (unsubscribe func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextID
	w.nextID++
	w.subs = append(w.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			for i, s := range w.subs {
				if s.id == id {
					w.subs = append(w.subs[:i:i], w.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Listeners reports the number of live subscriptions.
func (w *Window) Listeners() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs)
}

// Package shell owns the cross-cutting layout state of one visitor: theme, the
// mobile slide-out sidebar and the desktop collapsed sidebar. Views only read a
// State snapshot; every mutation goes through Controller methods.
//
// A Controller is not safe for concurrent use. Callers serialize events.
package shell

import (
	"log/slog"

	"github.com/mazichukwuka/portfolio/internal/logfields"
	"github.com/mazichukwuka/portfolio/internal/prefs"
	"github.com/mazichukwuka/portfolio/internal/viewport"
)

// Document receives the page-level side effects of state changes.
type Document interface {
	SetTheme(Theme)
	LockScroll()
	UnlockScroll()
}

// State is the read-only view handed to page renderers.
type State struct {
	Theme            Theme `json:"theme"`
	SidebarOpen      bool  `json:"sidebarOpen"`
	SidebarCollapsed bool  `json:"sidebarCollapsed"`
	Mobile           bool  `json:"isMobile"`
	Tablet           bool  `json:"isTablet"`
}

// KeyEvent is a keydown reported by the page.
type KeyEvent struct {
	Key    string `json:"key"`
	Ctrl   bool   `json:"ctrl"`
	Meta   bool   `json:"meta"`
	Shift  bool   `json:"shift"`
	Target string `json:"target,omitempty"`
}

// KeyResult tells the page what happened to a key event.
type KeyResult struct {
	Handled        bool `json:"handled"`
	PreventDefault bool `json:"preventDefault"`
}

type Controller struct {
	doc    Document
	log    *slog.Logger
	theme  *prefs.Preference[Theme]
	window *viewport.Window
	mobile *viewport.Classifier
	tablet *viewport.Classifier

	open      bool
	collapsed bool

	scrollLocked  bool
	releaseResize func()
	releaseMobile func()
	closed        bool
}

// New mounts a controller: it loads the persisted theme, applies it to doc and
// starts watching the window's breakpoints.
func New(window *viewport.Window, store prefs.Store, doc Document, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	c := &Controller{
		doc:    doc,
		log:    log,
		window: window,
		theme:  prefs.New(store, ThemeKey, DefaultTheme, log),
	}

	t := c.theme.Load()
	if !t.Valid() {
		log.Warn("Ignoring unknown stored theme", logfields.Theme(string(t)))
		t = DefaultTheme
		c.theme = prefs.New(store, ThemeKey, t, log)
	}
	c.doc.SetTheme(t)

	c.mobile = viewport.Watch(window, viewport.Mobile)
	c.tablet = viewport.Watch(window, viewport.Tablet)
	c.releaseMobile = c.mobile.OnChange(c.mobileChanged)
	return c
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	return State{
		Theme:            c.theme.Get(),
		SidebarOpen:      c.open,
		SidebarCollapsed: c.collapsed,
		Mobile:           c.mobile.Matches(),
		Tablet:           c.tablet.Matches(),
	}
}

func (c *Controller) ToggleSidebar() {
	c.open = !c.open
	c.reconcile()
}

func (c *Controller) CloseSidebar() {
	if !c.open {
		return
	}
	c.open = false
	c.reconcile()
}

// ToggleSidebarCollapse flips the desktop collapsed mode. Collapse does not exist
// on mobile, so the call is ignored there.
func (c *Controller) ToggleSidebarCollapse() {
	if c.mobile.Matches() {
		return
	}
	c.collapsed = !c.collapsed
}

func (c *Controller) ToggleTheme() {
	next := c.theme.Get().Toggle()
	c.theme.Set(next)
	c.doc.SetTheme(next)
}

// RouteChanged closes the slide-out after navigation on mobile.
func (c *Controller) RouteChanged() {
	if c.mobile.Matches() {
		c.CloseSidebar()
	}
}

// HandleKey applies the global keyboard bindings. The focus target does not
// matter: the theme shortcut works inside form fields too.
func (c *Controller) HandleKey(ev KeyEvent) KeyResult {
	if ev.Key == "Escape" && c.open {
		c.CloseSidebar()
		return KeyResult{Handled: true}
	}
	if (ev.Ctrl || ev.Meta) && ev.Shift && (ev.Key == "T" || ev.Key == "t") {
		c.ToggleTheme()
		return KeyResult{Handled: true, PreventDefault: true}
	}
	return KeyResult{}
}

// Close unmounts the controller, releasing every subscription and any scroll
// lock it still holds.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.releaseResize != nil {
		c.releaseResize()
		c.releaseResize = nil
	}
	if c.scrollLocked {
		c.doc.UnlockScroll()
		c.scrollLocked = false
	}
	c.releaseMobile()
	c.mobile.Close()
	c.tablet.Close()
}

func (c *Controller) mobileChanged(mobile bool) {
	if !mobile && c.open {
		c.open = false
	}
	c.reconcile()
}

func (c *Controller) resized(width int) {
	if width > viewport.MobileMaxWidth {
		c.CloseSidebar()
	}
}

// reconcile installs or releases the resources tied to the mobile slide-out
// being visible: the resize listener and the body scroll lock.
func (c *Controller) reconcile() {
	if c.closed {
		return
	}
	active := c.mobile.Matches() && c.open

	switch {
	case active && c.releaseResize == nil:
		c.releaseResize = c.window.Subscribe(c.resized)
	case !active && c.releaseResize != nil:
		c.releaseResize()
		c.releaseResize = nil
	}

	switch {
	case active && !c.scrollLocked:
		c.doc.LockScroll()
		c.scrollLocked = true
	case !active && c.scrollLocked:
		c.doc.UnlockScroll()
		c.scrollLocked = false
	}
}

package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazichukwuka/portfolio/internal/prefs"
	"github.com/mazichukwuka/portfolio/internal/viewport"
)

type fakeDocument struct {
	themes  []Theme
	locks   int
	unlocks int
}

func (d *fakeDocument) SetTheme(t Theme) { d.themes = append(d.themes, t) }
func (d *fakeDocument) LockScroll()      { d.locks++ }
func (d *fakeDocument) UnlockScroll()    { d.unlocks++ }

func (d *fakeDocument) theme() Theme {
	if len(d.themes) == 0 {
		return ""
	}
	return d.themes[len(d.themes)-1]
}

func newController(t *testing.T, width int, store prefs.Store) (*Controller, *viewport.Window, *fakeDocument) {
	t.Helper()
	if store == nil {
		store = prefs.NewMemoryStore()
	}
	w := viewport.NewWindow(width)
	doc := &fakeDocument{}
	c := New(w, store, doc, nil)
	t.Cleanup(c.Close)
	return c, w, doc
}

func TestNewAppliesDefaultTheme(t *testing.T) {
	c, _, doc := newController(t, 1280, nil)
	assert.Equal(t, ThemeDark, c.Snapshot().Theme)
	assert.Equal(t, []Theme{ThemeDark}, doc.themes)
}

func TestThemePersistsAcrossReload(t *testing.T) {
	store := prefs.NewMemoryStore()
	c, _, doc := newController(t, 1280, store)
	c.ToggleTheme()
	assert.Equal(t, ThemeLight, doc.theme())

	raw, err := store.Get(ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, `"light"`, raw)

	c.Close()
	reloaded, _, doc2 := newController(t, 1280, store)
	assert.Equal(t, ThemeLight, reloaded.Snapshot().Theme)
	assert.Equal(t, ThemeLight, doc2.theme())
}

func TestUnknownStoredThemeFallsBack(t *testing.T) {
	store := prefs.NewMemoryStore()
	require.NoError(t, store.Set(ThemeKey, `"sepia"`))
	c, _, doc := newController(t, 1280, store)
	assert.Equal(t, ThemeDark, c.Snapshot().Theme)
	assert.Equal(t, ThemeDark, doc.theme())

	c.ToggleTheme()
	assert.Equal(t, ThemeLight, c.Snapshot().Theme)
}

func TestSidebarClosesOnceWhenCrossingMobileBreakpoint(t *testing.T) {
	c, w, doc := newController(t, 500, nil)
	require.True(t, c.Snapshot().Mobile)

	c.ToggleSidebar()
	require.True(t, c.Snapshot().SidebarOpen)
	assert.Equal(t, 1, doc.locks)

	w.Resize(700)
	assert.True(t, c.Snapshot().SidebarOpen)

	w.Resize(900)
	s := c.Snapshot()
	assert.False(t, s.SidebarOpen)
	assert.False(t, s.Mobile)
	assert.Equal(t, 1, doc.unlocks)

	w.Resize(1200)
	w.Resize(600)
	assert.False(t, c.Snapshot().SidebarOpen)
	assert.Equal(t, 1, doc.locks)
	assert.Equal(t, 1, doc.unlocks)
}

func TestResizeListenerOnlyWhileMobileAndOpen(t *testing.T) {
	c, w, _ := newController(t, 500, nil)
	base := w.Listeners()

	c.ToggleSidebar()
	assert.Equal(t, base+1, w.Listeners())

	c.CloseSidebar()
	assert.Equal(t, base, w.Listeners())

	c.CloseSidebar()
	assert.Equal(t, base, w.Listeners())
}

func TestDesktopSidebarDoesNotLockScroll(t *testing.T) {
	c, w, doc := newController(t, 1280, nil)
	base := w.Listeners()

	c.ToggleSidebar()
	assert.True(t, c.Snapshot().SidebarOpen)
	assert.Zero(t, doc.locks)
	assert.Equal(t, base, w.Listeners())
}

func TestCollapseIgnoredOnMobile(t *testing.T) {
	c, w, _ := newController(t, 500, nil)
	c.ToggleSidebarCollapse()
	assert.False(t, c.Snapshot().SidebarCollapsed)

	w.Resize(1280)
	c.ToggleSidebarCollapse()
	assert.True(t, c.Snapshot().SidebarCollapsed)
	c.ToggleSidebarCollapse()
	assert.False(t, c.Snapshot().SidebarCollapsed)
}

func TestTabletClassification(t *testing.T) {
	c, w, _ := newController(t, 900, nil)
	s := c.Snapshot()
	assert.True(t, s.Tablet)
	assert.False(t, s.Mobile)

	w.Resize(1500)
	assert.False(t, c.Snapshot().Tablet)
}

func TestEscapeClosesSidebar(t *testing.T) {
	c, _, _ := newController(t, 1280, nil)
	assert.Equal(t, KeyResult{}, c.HandleKey(KeyEvent{Key: "Escape"}))

	c.ToggleSidebar()
	res := c.HandleKey(KeyEvent{Key: "Escape"})
	assert.True(t, res.Handled)
	assert.False(t, res.PreventDefault)
	assert.False(t, c.Snapshot().SidebarOpen)
}

func TestThemeShortcutInsideFormField(t *testing.T) {
	c, _, doc := newController(t, 1280, nil)

	res := c.HandleKey(KeyEvent{Key: "T", Ctrl: true, Shift: true, Target: "textarea#message"})
	assert.True(t, res.PreventDefault)
	assert.Equal(t, ThemeLight, doc.theme())

	res = c.HandleKey(KeyEvent{Key: "T", Meta: true, Shift: true, Target: "input#email"})
	assert.True(t, res.PreventDefault)
	assert.Equal(t, ThemeDark, doc.theme())
}

func TestShortcutNeedsModifiers(t *testing.T) {
	c, _, doc := newController(t, 1280, nil)
	for _, ev := range []KeyEvent{
		{Key: "T", Shift: true},
		{Key: "T", Ctrl: true},
		{Key: "R", Ctrl: true, Shift: true},
	} {
		assert.Equal(t, KeyResult{}, c.HandleKey(ev), ev.Key)
	}
	assert.Equal(t, []Theme{ThemeDark}, doc.themes)
}

func TestRouteChangeClosesMobileSidebar(t *testing.T) {
	c, _, _ := newController(t, 500, nil)
	c.ToggleSidebar()
	c.RouteChanged()
	assert.False(t, c.Snapshot().SidebarOpen)

	desktop, _, _ := newController(t, 1280, nil)
	desktop.ToggleSidebar()
	desktop.RouteChanged()
	assert.True(t, desktop.Snapshot().SidebarOpen)
}

func TestCloseReleasesEverything(t *testing.T) {
	w := viewport.NewWindow(500)
	doc := &fakeDocument{}
	c := New(w, prefs.NewMemoryStore(), doc, nil)
	c.ToggleSidebar()
	require.Equal(t, 1, doc.locks)
	require.NotZero(t, w.Listeners())

	c.Close()
	assert.Zero(t, w.Listeners())
	assert.Equal(t, 1, doc.unlocks)

	c.Close()
	assert.Equal(t, 1, doc.unlocks)
}

func TestParseTheme(t *testing.T) {
	th, ok := ParseTheme("light")
	assert.True(t, ok)
	assert.Equal(t, ThemeLight, th)

	th, ok = ParseTheme("")
	assert.False(t, ok)
	assert.Equal(t, DefaultTheme, th)
}

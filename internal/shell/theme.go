package shell

// Theme is the site-wide colour scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"

	DefaultTheme = ThemeDark
)

// ThemeKey is the preference key the theme is persisted under.
const ThemeKey = "theme"

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme maps a string to a Theme, falling back to DefaultTheme.
func ParseTheme(s string) (Theme, bool) {
	t := Theme(s)
	if !t.Valid() {
		return DefaultTheme, false
	}
	return t, true
}

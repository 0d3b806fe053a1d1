// Package router maps request paths to page views and tracks the active route of
// a visitor session.
package router

import "strings"

// Page identifies a page view.
type Page int

const (
	NotFound Page = iota
	Home
	Accountant
	WebDeveloper
	DataAnalyst
	ResearchAcademic
	Portfolio
	Resources
	FAQ
	Contact
	Blog
	BlogArticle
)

var pageNames = map[Page]string{
	NotFound:         "not-found",
	Home:             "home",
	Accountant:       "accountant",
	WebDeveloper:     "web-developer",
	DataAnalyst:      "data-analyst",
	ResearchAcademic: "research-academic",
	Portfolio:        "portfolio",
	Resources:        "resources",
	FAQ:              "faq",
	Contact:          "contact",
	Blog:             "blog",
	BlogArticle:      "blog-article",
}

func (p Page) String() string {
	if n, ok := pageNames[p]; ok {
		return n
	}
	return "unknown"
}

// Route is one entry of the routing table.
type Route struct {
	Page        Page
	Path        string
	Title       string
	Description string
	// Group names the sidebar group the route is listed under, if any.
	Group string
	// Hidden routes are routable but not listed in navigation.
	Hidden bool
}

// Options toggles the optional parts of the table.
type Options struct {
	Blog     bool
	NotFound bool
}

var fixed = []Route{
	{Page: Home, Path: "/", Title: "Home", Description: "Welcome page"},
	{Page: Portfolio, Path: "/portfolio", Title: "Portfolio", Description: "View my work"},
	{Page: Accountant, Path: "/accountant", Title: "Chartered Accountant", Description: "Financial expertise", Group: "Roles"},
	{Page: WebDeveloper, Path: "/web-developer", Title: "Web Developer", Description: "Web development", Group: "Roles"},
	{Page: DataAnalyst, Path: "/data-analyst", Title: "Data Analyst", Description: "Data insights", Group: "Roles"},
	{Page: ResearchAcademic, Path: "/research-academic", Title: "Research & Academic", Description: "Academic work", Group: "Roles"},
	{Page: Resources, Path: "/resources", Title: "Resources", Description: "Useful tools"},
	{Page: FAQ, Path: "/faq", Title: "FAQ", Description: "Common questions"},
	{Page: Contact, Path: "/contact", Title: "Contact", Description: "Get in touch"},
}

var blogRoutes = []Route{
	{Page: Blog, Path: "/blog", Title: "Blog", Description: "Latest articles"},
	{Page: BlogArticle, Path: "/blog/:slug", Title: "Article", Hidden: true},
}

// Table is an immutable routing table.
type Table struct {
	opts   Options
	routes []Route
	byPath map[string]Route
}

func NewTable(opts Options) *Table {
	t := &Table{opts: opts, byPath: make(map[string]Route)}
	for _, r := range fixed {
		// Blog sits before Contact in navigation.
		if r.Page == Contact && opts.Blog {
			t.routes = append(t.routes, blogRoutes...)
		}
		t.routes = append(t.routes, r)
	}
	for _, r := range t.routes {
		t.byPath[r.Path] = r
	}
	return t
}

func (t *Table) Options() Options { return t.opts }

// Routes returns every route in navigation order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Match is the result of resolving a path.
type Match struct {
	Route Route
	Slug  string
	Found bool
}

// Resolve maps path to a route. Trailing slashes are ignored.
func (t *Table) Resolve(path string) Match {
	path = Clean(path)
	if r, ok := t.byPath[path]; ok {
		return Match{Route: r, Found: true}
	}
	if t.opts.Blog {
		if slug, ok := strings.CutPrefix(path, "/blog/"); ok && slug != "" && !strings.Contains(slug, "/") {
			return Match{Route: t.byPath["/blog/:slug"], Slug: slug, Found: true}
		}
	}
	return Match{Route: Route{Page: NotFound, Path: path, Title: "Page Not Found", Hidden: true}}
}

// Lookup returns the route registered for page.
func (t *Table) Lookup(p Page) (Route, bool) {
	for _, r := range t.routes {
		if r.Page == p {
			return r, true
		}
	}
	return Route{}, false
}

// Clean normalizes a request path: the query and fragment are dropped and a
// trailing slash is removed.
func Clean(path string) string {
	path, _ = SplitFragment(path)
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

// SplitFragment separates "/accountant#services" into its path and fragment.
func SplitFragment(url string) (path, fragment string) {
	path, fragment, _ = strings.Cut(url, "#")
	return path, fragment
}

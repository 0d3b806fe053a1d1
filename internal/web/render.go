package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin/render"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mazichukwuka/portfolio/internal/content"
	"github.com/mazichukwuka/portfolio/internal/router"
	"github.com/mazichukwuka/portfolio/internal/ui"
)

//go:embed templates static
var assets embed.FS

// Static returns the embedded static assets.
func Static() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// layoutRoot is the template every page executes.
const layoutRoot = "layout"

type entry struct {
	tmpl *template.Template
	root string
}

// pages is a gin HTMLRender that keeps one template set per page, each a clone
// of the shared layout with the page's "content" block parsed in. Partials of
// the layout are addressable by their own name.
type pages struct {
	entries map[string]entry
	base    *template.Template
}

var funcs = template.FuncMap{
	"icon":  iconHTML,
	"title": title,
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"ago":   humanize.Time,
	"comma": humanize.Comma,
	"countup": func(target int64, suffix string) ui.CountUp {
		return ui.CountUp{Target: target, Duration: ui.DefaultCountUpDuration, Suffix: suffix}
	},
	"frames":   frames,
	"section":  sectionHref,
	"external": isExternal,
	"join":     strings.Join,
}

func parseTemplates() (*pages, error) {
	base, err := template.New(layoutRoot).Funcs(funcs).ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing layout templates: %w", err)
	}

	files, err := fs.Glob(assets, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	p := &pages{entries: make(map[string]entry), base: base}
	for _, f := range files {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning layout for %s: %w", f, err)
		}
		t, err := clone.ParseFS(assets, f)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f, err)
		}
		name := strings.TrimSuffix(path.Base(f), ".html")
		p.entries[name] = entry{tmpl: t, root: layoutRoot}
	}
	for _, t := range base.Templates() {
		if _, ok := p.entries[t.Name()]; !ok && t.Name() != layoutRoot {
			p.entries[t.Name()] = entry{tmpl: base, root: t.Name()}
		}
	}
	return p, nil
}

// Instance implements render.HTMLRender.
func (p *pages) Instance(name string, data any) render.Render {
	e, ok := p.entries[name]
	if !ok {
		return render.HTML{Template: p.base, Name: name, Data: data}
	}
	return render.HTML{Template: e.tmpl, Name: e.root, Data: data}
}

// title capitalizes a derived label. Casers are not safe for concurrent use,
// so each call gets its own.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// frames renders a count-up plan for the data-count-frames attribute.
func frames(c ui.CountUp) string {
	fr := c.Frames()
	out := make([]string, len(fr))
	for i, v := range fr {
		out[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(out, ",")
}

// sectionHref turns "/accountant#services" into a link that also tells the
// server which section to scroll to.
func sectionHref(url string) string {
	p, frag := router.SplitFragment(url)
	if frag == "" {
		return p
	}
	return p + "?section=" + frag + "#" + frag
}

func isExternal(link string) bool {
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")
}

var brandIcons = map[content.Icon]bool{
	"css3": true, "facebook": true, "github": true, "html5": true, "js-square": true,
	"linkedin": true, "nodejs": true, "python": true, "react": true,
	"researchgate": true, "twitter": true, "whatsapp": true,
}

// iconHTML draws an icon as a Font Awesome glyph.
func iconHTML(i content.Icon) template.HTML {
	if !i.Valid() {
		return ""
	}
	name, style := string(i), "fa-solid"
	switch {
	case brandIcons[i]:
		style = "fa-brands"
	case strings.HasPrefix(name, "reg-"):
		name, style = strings.TrimPrefix(name, "reg-"), "fa-regular"
	}
	return template.HTML(fmt.Sprintf(`<i class="%s fa-%s" aria-hidden="true"></i>`, style, name))
}

package web

import (
	"html/template"
	"net/url"
	"time"

	"github.com/mazichukwuka/portfolio/internal/content"
	"github.com/mazichukwuka/portfolio/internal/listing"
	"github.com/mazichukwuka/portfolio/internal/reveal"
	"github.com/mazichukwuka/portfolio/internal/router"
)

type navItem struct {
	Title       string
	Path        string
	Description string
	Active      bool
}

// navGroup is a sidebar entry. A group without a label is a single link.
type navGroup struct {
	Label  string
	Items  []navItem
	Active bool
}

// view is the data every page template receives.
type view struct {
	Title        string
	Description  string
	Page         string
	Path         string
	General      content.General
	Contact      content.Contact
	Nav          []navGroup
	State        State
	ScrollTop    bool
	ScrollTarget string
	RevealConfig string
	Blog         bool
	Year         int
	Body         any

	scan *reveal.Scan
}

// Reveal registers an animated element.
func (v *view) Reveal(preset string) template.HTMLAttr {
	return v.scan.Attr(reveal.Preset(preset), 0)
}

// RevealDelay registers an animated element with a delay in milliseconds.
func (v *view) RevealDelay(preset string, ms int) template.HTMLAttr {
	return v.scan.Attr(reveal.Preset(preset), time.Duration(ms)*time.Millisecond)
}

// Grid registers the index-th card of a grid.
func (v *view) Grid(preset string, index int) template.HTMLAttr {
	return v.scan.Grid(reveal.Preset(preset), index)
}

func buildNav(table *router.Table, current router.Route) []navGroup {
	var groups []navGroup
	index := make(map[string]int)
	for _, r := range table.Routes() {
		if r.Hidden {
			continue
		}
		item := navItem{
			Title:       r.Title,
			Path:        r.Path,
			Description: r.Description,
			Active:      r.Page == current.Page || (r.Page == router.Blog && current.Page == router.BlogArticle),
		}
		if r.Group == "" {
			groups = append(groups, navGroup{Items: []navItem{item}, Active: item.Active})
			continue
		}
		i, ok := index[r.Group]
		if !ok {
			i = len(groups)
			index[r.Group] = i
			groups = append(groups, navGroup{Label: r.Group})
		}
		groups[i].Items = append(groups[i].Items, item)
		groups[i].Active = groups[i].Active || item.Active
	}
	return groups
}

// categoryLink is one button of a category filter bar.
type categoryLink struct {
	Name   string
	Href   string
	Active bool
}

// filterBar describes the filter of a list page.
type filterBar[T listing.Item] struct {
	Links   []categoryLink
	Items   []T
	Empty   bool
	Current string
}

func newFilterBar[T listing.Item](f *listing.Filter[T], base string) filterBar[T] {
	bar := filterBar[T]{Items: f.Visible(), Empty: f.Empty(), Current: f.Selected()}
	for _, cat := range f.Categories() {
		href := base
		if cat != listing.All {
			href += "?category=" + url.QueryEscape(cat)
		}
		bar.Links = append(bar.Links, categoryLink{Name: cat, Href: href, Active: cat == f.Selected()})
	}
	return bar
}

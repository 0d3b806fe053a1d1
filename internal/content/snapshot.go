package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by lookups for an unknown slug.
var ErrNotFound = errors.New("content not found")

// Snapshot is one immutable load of the site content.
type Snapshot struct {
	Site     Site
	Articles []Article
	LoadedAt time.Time

	roles    map[string]int
	articles map[string]int
}

func load(md goldmark.Markdown, fsys fs.FS) (*Snapshot, error) {
	raw, err := fs.ReadFile(fsys, "site.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading site.yaml: %w", err)
	}
	var site Site
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&site); err != nil {
		return nil, fmt.Errorf("decoding site.yaml: %w", err)
	}
	articles, err := loadArticles(md, fsys)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		Site:     site,
		Articles: articles,
		LoadedAt: time.Now(),
		roles:    make(map[string]int, len(site.Roles)),
		articles: make(map[string]int, len(articles)),
	}
	for i, r := range site.Roles {
		if _, dup := s.roles[r.Slug]; dup {
			return nil, fmt.Errorf("duplicate role %q", r.Slug)
		}
		s.roles[r.Slug] = i
	}
	for i, a := range articles {
		s.articles[a.Slug] = i
	}
	return s, nil
}

// Role returns the profile with the given slug.
func (s *Snapshot) Role(slug string) (Role, error) {
	i, ok := s.roles[slug]
	if !ok {
		return Role{}, fmt.Errorf("role %q: %w", slug, ErrNotFound)
	}
	return s.Site.Roles[i], nil
}

// Article returns the post with the given slug.
func (s *Snapshot) Article(slug string) (Article, error) {
	i, ok := s.articles[slug]
	if !ok {
		return Article{}, fmt.Errorf("article %q: %w", slug, ErrNotFound)
	}
	return s.Articles[i], nil
}

// Latest returns up to n of the newest articles.
func (s *Snapshot) Latest(n int) []Article {
	if n > len(s.Articles) {
		n = len(s.Articles)
	}
	if n < 0 {
		n = 0
	}
	return s.Articles[:n:n]
}

// Portfolio returns the collections shown on the portfolio page in merge order:
// home previews, each role's projects, then research publications. Duplicates
// are left for the list filter to resolve.
func (s *Snapshot) Portfolio() [][]Project {
	out := [][]Project{s.Site.Previews}
	var pubs []Project
	for _, r := range s.Site.Roles {
		if len(r.Projects) > 0 {
			out = append(out, r.Projects)
		}
		for _, p := range r.Publications {
			pubs = append(pubs, p.Project())
		}
	}
	return append(out, pubs)
}

// SkillAverage is the mean of the home page skill percentages.
func (s *Snapshot) SkillAverage() int {
	if len(s.Site.Skills) == 0 {
		return 0
	}
	total := 0
	for _, sk := range s.Site.Skills {
		total += sk.Percentage
	}
	return (total + len(s.Site.Skills)/2) / len(s.Site.Skills)
}

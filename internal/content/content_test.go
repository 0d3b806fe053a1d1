package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazichukwuka/portfolio/internal/listing"
)

const minimalSite = `
general:
  fullName: Test Person
  tagline: Tester
roles:
  - slug: accountant
    title: Accountant
    projects:
      - {id: p1, title: Audit, category: Audit}
    testimonials: []
`

const post = `---
title: Hello
category: Notes
date: '2024-01-02'
---

## Heading

Some *text*.
`

func TestEmbeddedContentLoads(t *testing.T) {
	s, err := Open("", nil)
	require.NoError(t, err)
	snap := s.Snapshot()

	assert.Equal(t, "Mazi Chukwuka", snap.Site.General.FullName)
	require.Len(t, snap.Site.Roles, 4)
	for _, slug := range []string{"accountant", "web-developer", "data-analyst", "research-academic"} {
		r, err := snap.Role(slug)
		require.NoError(t, err, slug)
		assert.NotEmpty(t, r.Title)
	}
	assert.NotEmpty(t, snap.Site.FAQs)
	assert.NotEmpty(t, snap.Site.Resources)
	assert.Len(t, snap.Articles, 10)
}

func TestArticlesNewestFirst(t *testing.T) {
	s, err := Open("", nil)
	require.NoError(t, err)
	latest := s.Snapshot().Latest(3)
	require.Len(t, latest, 3)
	assert.Equal(t, "5-common-mistakes-business-financial-reports", latest[0].Slug)
	for i := 1; i < len(latest); i++ {
		assert.False(t, latest[i].Date.After(latest[i-1].Date))
	}
	assert.Len(t, s.Snapshot().Latest(100), 10)
	assert.Empty(t, s.Snapshot().Latest(-1))
}

func TestArticleRendersMarkdown(t *testing.T) {
	s, err := Open("", nil)
	require.NoError(t, err)
	a, err := s.Snapshot().Article("understanding-ifrs-16")
	require.NoError(t, err)
	assert.Equal(t, "Accounting", a.Category)
	assert.Contains(t, string(a.Body), `<h2 id="introduction-to-ifrs-16">`)
	assert.Contains(t, string(a.Body), "<strong>Lease Liability:</strong>")
	assert.GreaterOrEqual(t, a.ReadingMinutes, 1)
}

func TestUnknownSlugs(t *testing.T) {
	s, err := Open("", nil)
	require.NoError(t, err)
	_, err = s.Snapshot().Article("nonexistent-slug")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = s.Snapshot().Role("astronaut")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPortfolioMerge(t *testing.T) {
	s, err := Open("", nil)
	require.NoError(t, err)
	f := listing.New(s.Snapshot().Portfolio()...)

	assert.Len(t, f.Items(), 13)
	cats := f.Categories()
	assert.Equal(t, listing.All, cats[0])
	assert.Equal(t, "Consulting", cats[1])
	assert.Contains(t, cats, "Research: FinTech")

	f.Select("Research: FinTech")
	require.Len(t, f.Visible(), 1)
	assert.True(t, f.Visible()[0].External)
}

func TestUnknownIconRejected(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml": {Data: []byte("general:\n  interests:\n    - icon: rocket\n      title: x\n")},
	}
	_, err := OpenFS(fsys, "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown icon "rocket"`)
}

func TestUnknownFieldRejected(t *testing.T) {
	fsys := fstest.MapFS{"site.yaml": {Data: []byte("generl: {}\n")}}
	_, err := OpenFS(fsys, "", nil)
	assert.Error(t, err)
}

func TestDraftsSkipped(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml":     {Data: []byte(minimalSite)},
		"blog/hello.md": {Data: []byte(post)},
		"blog/wip.md":   {Data: []byte(strings.Replace(post, "title: Hello", "title: WIP\ndraft: true", 1))},
	}
	s, err := OpenFS(fsys, "", nil)
	require.NoError(t, err)
	require.Len(t, s.Snapshot().Articles, 1)
	assert.Equal(t, "hello", s.Snapshot().Articles[0].Slug)
	assert.Equal(t, "Hello", s.Snapshot().Articles[0].AltText)
}

func TestBadDateFails(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml":   {Data: []byte(minimalSite)},
		"blog/bad.md": {Data: []byte(strings.Replace(post, "2024-01-02", "January", 1))},
	}
	_, err := OpenFS(fsys, "", nil)
	assert.Error(t, err)
}

func TestReloadKeepsOldSnapshotOnError(t *testing.T) {
	fsys := fstest.MapFS{"site.yaml": {Data: []byte(minimalSite)}}
	s, err := OpenFS(fsys, "", nil)
	require.NoError(t, err)
	before := s.Snapshot()

	fsys["site.yaml"] = &fstest.MapFile{Data: []byte("roles: [")}
	assert.Error(t, s.Reload())
	assert.Same(t, before, s.Snapshot())

	fsys["blog/hello.md"] = &fstest.MapFile{Data: []byte(post)}
	fsys["site.yaml"] = &fstest.MapFile{Data: []byte(minimalSite)}
	var seen *Snapshot
	s.OnReload = func(snap *Snapshot) { seen = snap }
	require.NoError(t, s.Reload())
	assert.NotSame(t, before, s.Snapshot())
	assert.Same(t, seen, s.Snapshot())
	assert.Len(t, s.Snapshot().Articles, 1)
}

func TestWatchReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "blog"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site.yaml"), []byte(minimalSite), 0o644))

	s, err := Open(dir, nil)
	require.NoError(t, err)
	assert.Empty(t, s.Snapshot().Articles)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Watch(ctx, 20*time.Millisecond))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "blog", "hello.md"), []byte(post), 0o644))
	require.Eventually(t, func() bool {
		return len(s.Snapshot().Articles) == 1
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatchNeedsDirectory(t *testing.T) {
	s, err := Open("", nil)
	require.NoError(t, err)
	assert.Error(t, s.Watch(context.Background(), 0))
}

func TestSkillAverage(t *testing.T) {
	s, err := Open("", nil)
	require.NoError(t, err)
	assert.Equal(t, 86, s.Snapshot().SkillAverage())
}

func TestResourceIcon(t *testing.T) {
	assert.Equal(t, Icon("tools"), ResourceIcon("Tool"))
	assert.Equal(t, Icon("link"), ResourceIcon("website"))
	assert.Equal(t, Icon("lightbulb"), ResourceIcon("podcast"))
	assert.True(t, ResourceIcon("course").Valid())
}

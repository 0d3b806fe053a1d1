package content

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

const dateLayout = "2006-01-02"

// wordsPerMinute drives the reading time estimate.
const wordsPerMinute = 200

type articleMeta struct {
	Title    string   `yaml:"title"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
	Date     string   `yaml:"date"`
	Author   string   `yaml:"author"`
	Image    string   `yaml:"image"`
	Alt      string   `yaml:"alt"`
	Preview  string   `yaml:"preview"`
	Draft    bool     `yaml:"draft"`
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("dracula"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// parseArticle reads one post. The slug is the file name without extension.
func parseArticle(md goldmark.Markdown, name string, src []byte) (Article, bool, error) {
	var meta articleMeta
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return Article{}, false, fmt.Errorf("parsing front matter of %s: %w", name, err)
	}
	slug := strings.TrimSuffix(path.Base(name), path.Ext(name))
	if meta.Title == "" {
		return Article{}, false, fmt.Errorf("%s: missing title", name)
	}
	date, err := time.Parse(dateLayout, meta.Date)
	if err != nil {
		return Article{}, false, fmt.Errorf("%s: bad date %q: %w", name, meta.Date, err)
	}

	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return Article{}, false, fmt.Errorf("rendering %s: %w", name, err)
	}

	minutes := (len(strings.Fields(string(body))) + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	alt := meta.Alt
	if alt == "" {
		alt = meta.Title
	}
	return Article{
		Slug:           slug,
		Title:          meta.Title,
		Category:       meta.Category,
		Tags:           meta.Tags,
		Date:           date,
		Author:         meta.Author,
		Image:          meta.Image,
		AltText:        alt,
		Preview:        meta.Preview,
		Body:           template.HTML(buf.String()),
		ReadingMinutes: minutes,
	}, meta.Draft, nil
}

// loadArticles renders every blog/*.md file in fsys, newest first. Drafts are
// skipped.
func loadArticles(md goldmark.Markdown, fsys fs.FS) ([]Article, error) {
	names, err := fs.Glob(fsys, "blog/*.md")
	if err != nil {
		return nil, err
	}
	articles := make([]Article, 0, len(names))
	for _, name := range names {
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		a, draft, err := parseArticle(md, name, src)
		if err != nil {
			return nil, err
		}
		if draft {
			continue
		}
		articles = append(articles, a)
	}
	sort.SliceStable(articles, func(i, j int) bool {
		if articles[i].Date.Equal(articles[j].Date) {
			return articles[i].Slug < articles[j].Slug
		}
		return articles[i].Date.After(articles[j].Date)
	})
	return articles, nil
}

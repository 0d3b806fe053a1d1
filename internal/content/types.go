package content

import (
	"html/template"
	"time"
)

// Site is every static record of the site except blog articles.
type Site struct {
	General      General       `yaml:"general"`
	Roles        []Role        `yaml:"roles"`
	Experience   []Experience  `yaml:"experience"`
	Testimonials []Testimonial `yaml:"testimonials"`
	Services     []Service     `yaml:"services"`
	Previews     []Project     `yaml:"previews"`
	Skills       []SkillLevel  `yaml:"skills"`
	FAQs         []FAQ         `yaml:"faqs"`
	Resources    []Resource    `yaml:"resources"`
	Contact      Contact       `yaml:"contact"`
}

type General struct {
	FullName       string    `yaml:"fullName"`
	Tagline        string    `yaml:"tagline"`
	ProfilePicture string    `yaml:"profilePicture"`
	AboutMe        []string  `yaml:"aboutMe"`
	Interests      []Service `yaml:"interests"`
	CVs            []CV      `yaml:"cvs"`
}

// CV is one downloadable résumé.
type CV struct {
	Label string `yaml:"label"`
	Path  string `yaml:"path"`
}

// Service is an icon card with a title and a blurb. Features is only set on the
// home page cards.
type Service struct {
	Icon        Icon     `yaml:"icon"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features,omitempty"`
}

type Skill struct {
	Icon  Icon   `yaml:"icon"`
	Name  string `yaml:"name"`
	Level string `yaml:"level"`
}

// Project is a portfolio entry. IDs are unique across the whole site.
type Project struct {
	ID          string `yaml:"id"`
	Image       string `yaml:"image"`
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
	External    bool   `yaml:"external"`
}

func (p Project) ListID() string       { return p.ID }
func (p Project) ListCategory() string { return p.Category }

type Publication struct {
	ID       string `yaml:"id"`
	Image    string `yaml:"image"`
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Snippet  string `yaml:"snippet"`
	Link     string `yaml:"link"`
}

// Project converts the publication for the portfolio, where research entries
// are grouped under a "Research: " category.
func (p Publication) Project() Project {
	return Project{
		ID:          p.ID,
		Image:       p.Image,
		Title:       p.Title,
		Category:    "Research: " + p.Category,
		Description: p.Snippet,
		Link:        p.Link,
		External:    true,
	}
}

type Testimonial struct {
	Quote  string `yaml:"quote"`
	Author string `yaml:"author"`
	Image  string `yaml:"image"`
}

// Role is one of the professional profiles, each with its own page.
type Role struct {
	Slug          string        `yaml:"slug"`
	Title         string        `yaml:"title"`
	Tagline       string        `yaml:"tagline"`
	HeroImage     string        `yaml:"heroImage"`
	Introduction  []string      `yaml:"introduction"`
	Services      []Service     `yaml:"services,omitempty"`
	Skills        []Skill       `yaml:"skills,omitempty"`
	ResearchAreas []Service     `yaml:"researchAreas,omitempty"`
	Projects      []Project     `yaml:"projects,omitempty"`
	Publications  []Publication `yaml:"publications,omitempty"`
	Stats         []Stat        `yaml:"stats,omitempty"`
	Testimonials  []Testimonial `yaml:"testimonials"`
}

// Stat is an achievement figure shown with a count-up animation.
type Stat struct {
	Value  int64  `yaml:"value"`
	Suffix string `yaml:"suffix,omitempty"`
	Label  string `yaml:"label"`
}

type Experience struct {
	Title        string   `yaml:"title"`
	Company      string   `yaml:"company"`
	Years        string   `yaml:"years"`
	Description  string   `yaml:"description"`
	Achievements []string `yaml:"achievements"`
}

// SkillLevel is a home page progress ring.
type SkillLevel struct {
	Skill      string `yaml:"skill"`
	Percentage int    `yaml:"percentage"`
	Color      string `yaml:"color"`
}

type FAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

type Resource struct {
	Type        string `yaml:"type"`
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
}

func (r Resource) Icon() Icon { return ResourceIcon(r.Type) }

type Contact struct {
	Email   string   `yaml:"email"`
	Phone   string   `yaml:"phone"`
	Address string   `yaml:"address"`
	Social  []Social `yaml:"social"`
}

type Social struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Icon Icon   `yaml:"icon"`
}

// Article is a rendered blog post.
type Article struct {
	Slug     string
	Title    string
	Category string
	Tags     []string
	Date     time.Time
	Author   string
	Image    string
	AltText  string
	Preview  string
	Body     template.HTML
	// ReadingMinutes is estimated from the Markdown source.
	ReadingMinutes int
}

func (a Article) ListID() string       { return a.Slug }
func (a Article) ListCategory() string { return a.Category }

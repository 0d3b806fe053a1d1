package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mazichukwuka/portfolio/internal/content"
	"github.com/mazichukwuka/portfolio/internal/listing"
	"github.com/mazichukwuka/portfolio/internal/logfields"
	"github.com/mazichukwuka/portfolio/internal/reveal"
	"github.com/mazichukwuka/portfolio/internal/router"
	"github.com/mazichukwuka/portfolio/internal/ui"
)

const latestArticles = 3

type statView struct {
	Label string
	Count ui.CountUp
}

type homeBody struct {
	Interests    []content.Service
	Services     []content.Service
	Experience   []content.Experience
	Testimonials []content.Testimonial
	Previews     []content.Project
	Skills       []content.SkillLevel
	Stats        []statView
	Latest       []content.Article
}

type roleBody struct {
	Role  content.Role
	Stats []statView
}

type resourceGroup struct {
	Category string
	Items    []content.Resource
}

type faqItem struct {
	Question string
	Answer   string
	Open     bool
	Href     string
}

type articleBody struct {
	Article content.Article
	More    []content.Article
}

type notFoundBody struct {
	Heading   string
	Message   string
	BackHref  string
	BackLabel string
}

// page renders whichever view the request path resolves to.
func (s *Server) page(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusNotFound)
		return
	}
	sess, release := s.sessions.Acquire(c)
	defer release()

	m, _ := sess.Nav.Navigate(c.Request.URL.Path)
	c.Set(logfields.KeyPage, m.Route.Page.String())
	snap := s.content.Snapshot()
	v := s.newView(c, sess, m.Route, snap)

	switch m.Route.Page {
	case router.Home:
		s.render(c, sess, http.StatusOK, "home", v, homeView(snap, s.table.Options().Blog))
	case router.Accountant, router.WebDeveloper, router.DataAnalyst, router.ResearchAcademic:
		role, err := snap.Role(m.Route.Page.String())
		if err != nil {
			s.log.Error("Role content missing", logfields.Page(m.Route.Page.String()), logfields.Error(err))
			s.notFound(c, sess, v, "/", "Back to Home")
			return
		}
		v.Title = role.Title
		v.Description = role.Tagline
		s.render(c, sess, http.StatusOK, "role", v, roleBody{Role: role, Stats: roleStats(role)})
	case router.Portfolio:
		f := listing.New(snap.Portfolio()...)
		f.Select(c.Query("category"))
		s.render(c, sess, http.StatusOK, "portfolio", v, newFilterBar(f, m.Route.Path))
	case router.Resources:
		s.render(c, sess, http.StatusOK, "resources", v, groupResources(snap.Site.Resources))
	case router.FAQ:
		s.render(c, sess, http.StatusOK, "faq", v, faqView(snap.Site.FAQs, c.Query("open")))
	case router.Contact:
		s.render(c, sess, http.StatusOK, "contact", v, contactBody{})
	case router.Blog:
		f := listing.New(snap.Articles)
		f.Select(c.Query("category"))
		s.render(c, sess, http.StatusOK, "blog", v, newFilterBar(f, m.Route.Path))
	case router.BlogArticle:
		a, err := snap.Article(m.Slug)
		if errors.Is(err, content.ErrNotFound) {
			v.Title = "Article Not Found"
			s.renderNotFound(c, sess, v, notFoundBody{
				Heading:   "Article Not Found",
				Message:   "The article you are looking for does not exist or has been moved.",
				BackHref:  "/blog",
				BackLabel: "Back to Blog",
			})
			return
		}
		v.Title = a.Title
		v.Description = a.Preview
		s.render(c, sess, http.StatusOK, "article", v, articleBody{Article: a, More: moreArticles(snap, a.Slug)})
	default:
		s.notFound(c, sess, v, "/", "Back to Home")
	}
}

func (s *Server) newView(c *gin.Context, sess *Session, r router.Route, snap *content.Snapshot) *view {
	return &view{
		Title:        r.Title,
		Description:  r.Description,
		Page:         r.Page.String(),
		Path:         c.Request.URL.Path,
		General:      snap.Site.General,
		Contact:      snap.Site.Contact,
		Nav:          buildNav(s.table, r),
		ScrollTarget: c.Query("section"),
		RevealConfig: reveal.DefaultOptions().JSON(),
		Blog:         s.table.Options().Blog,
		Year:         time.Now().Year(),
		scan:         reveal.NewScan(sess.Reveal),
	}
}

// render executes a page and then hands the animated elements it registered to
// the session's reveal tracker.
func (s *Server) render(c *gin.Context, sess *Session, status int, name string, v *view, body any) {
	v.Body = body
	v.State = sess.State()
	for _, e := range sess.Effects() {
		if e.Kind == EffectScrollTop {
			v.ScrollTop = true
		}
	}
	c.HTML(status, name, v)
	v.scan.Commit()
}

// notFound renders the generic not-found view, or a bare 404 when the view is
// switched off.
func (s *Server) notFound(c *gin.Context, sess *Session, v *view, back, label string) {
	if !s.table.Options().NotFound {
		sess.Effects()
		c.Status(http.StatusNotFound)
		return
	}
	v.Title = "Page Not Found"
	s.renderNotFound(c, sess, v, notFoundBody{
		Heading:   "404",
		Message:   "The page you are looking for does not exist.",
		BackHref:  back,
		BackLabel: label,
	})
}

func (s *Server) renderNotFound(c *gin.Context, sess *Session, v *view, body notFoundBody) {
	s.render(c, sess, http.StatusNotFound, "not_found", v, body)
}

func homeView(snap *content.Snapshot, blog bool) homeBody {
	site := snap.Site
	b := homeBody{
		Interests:    site.General.Interests,
		Services:     site.Services,
		Experience:   site.Experience,
		Testimonials: site.Testimonials,
		Previews:     site.Previews,
		Skills:       site.Skills,
		Stats: []statView{
			{Label: "Years Experience", Count: countUp(int64(len(site.Experience)), "+")},
			{Label: "Projects Completed", Count: countUp(int64(len(site.Previews)), "+")},
			{Label: "Skill Average", Count: countUp(int64(snap.SkillAverage()), "%")},
		},
	}
	if blog {
		b.Latest = snap.Latest(latestArticles)
	}
	return b
}

func roleStats(r content.Role) []statView {
	out := make([]statView, 0, len(r.Stats))
	for _, st := range r.Stats {
		out = append(out, statView{Label: st.Label, Count: countUp(st.Value, st.Suffix)})
	}
	return out
}

func countUp(v int64, suffix string) ui.CountUp {
	return ui.CountUp{Target: v, Duration: ui.DefaultCountUpDuration, Suffix: suffix}
}

func groupResources(rs []content.Resource) []resourceGroup {
	var groups []resourceGroup
	index := make(map[string]int)
	for _, r := range rs {
		i, ok := index[r.Category]
		if !ok {
			i = len(groups)
			index[r.Category] = i
			groups = append(groups, resourceGroup{Category: r.Category})
		}
		groups[i].Items = append(groups[i].Items, r)
	}
	return groups
}

// faqView expands the item named by the open query parameter, if any.
func faqView(faqs []content.FAQ, open string) []faqItem {
	acc := ui.NewAccordion()
	if i, err := strconv.Atoi(open); err == nil && i >= 0 && i < len(faqs) {
		acc.Toggle(i)
	}
	out := make([]faqItem, len(faqs))
	for i, f := range faqs {
		out[i] = faqItem{Question: f.Question, Answer: f.Answer, Open: acc.IsOpen(i), Href: acc.ToggleHref(i)}
	}
	return out
}

func moreArticles(snap *content.Snapshot, slug string) []content.Article {
	var out []content.Article
	for _, a := range snap.Latest(latestArticles + 1) {
		if a.Slug != slug && len(out) < latestArticles {
			out = append(out, a)
		}
	}
	return out
}

// Package web serves the site: server-rendered pages, the per-visitor
// interaction endpoints and the contact form.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mazichukwuka/portfolio/internal/contact"
	"github.com/mazichukwuka/portfolio/internal/content"
	"github.com/mazichukwuka/portfolio/internal/metrics"
	"github.com/mazichukwuka/portfolio/internal/router"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Table    *router.Table
	Content  *content.Store
	Contact  *contact.Service
	Sessions *Sessions
	Recorder metrics.Recorder
	Logger   *slog.Logger

	// Middleware runs on every request after logging and recovery.
	Middleware []gin.HandlerFunc
	// Health lists the dependencies checked by /healthz.
	Health map[string]Pinger

	MetricsPath    string
	MetricsHandler http.Handler

	// AssetsDir is served under /assets when set.
	AssetsDir string
}

type Server struct {
	engine   *gin.Engine
	table    *router.Table
	content  *content.Store
	contact  *contact.Service
	sessions *Sessions
	recorder metrics.Recorder
	log      *slog.Logger
	health   map[string]Pinger
}

// New builds the gin engine and registers every route.
func New(opts Options) (*Server, error) {
	if opts.Table == nil || opts.Content == nil {
		return nil, errors.New("web: routing table and content store are required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Contact == nil {
		opts.Contact = contact.NewService(nil, opts.Logger)
	}
	if opts.Sessions == nil {
		opts.Sessions = NewSessions(opts.Table, false, opts.Logger, opts.Recorder)
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		engine:   gin.New(),
		table:    opts.Table,
		content:  opts.Content,
		contact:  opts.Contact,
		sessions: opts.Sessions,
		recorder: opts.Recorder,
		log:      opts.Logger,
		health:   opts.Health,
	}
	s.engine.HTMLRender = tmpl
	s.engine.Use(requestLogger(s.log, s.recorder), gin.Recovery())
	s.engine.Use(opts.Middleware...)

	s.engine.StaticFS("/static", http.FS(Static()))
	if opts.AssetsDir != "" {
		s.engine.Static("/assets", opts.AssetsDir)
	}
	s.engine.GET("/healthz", s.healthz)
	if opts.MetricsHandler != nil && opts.MetricsPath != "" {
		s.engine.GET(opts.MetricsPath, gin.WrapH(opts.MetricsHandler))
	}

	for _, r := range s.table.Routes() {
		s.engine.GET(r.Path, s.page)
	}
	s.engine.NoRoute(s.page)
	s.engine.POST("/contact", s.submitContact)

	ui := s.engine.Group("/ui")
	ui.POST("/viewport", s.event("viewport", s.resize))
	ui.POST("/sidebar/toggle", s.event("sidebar_toggle", func(_ *gin.Context, sess *Session) (gin.H, error) {
		sess.Shell.ToggleSidebar()
		return nil, nil
	}))
	ui.POST("/sidebar/close", s.event("sidebar_close", func(_ *gin.Context, sess *Session) (gin.H, error) {
		sess.Shell.CloseSidebar()
		return nil, nil
	}))
	ui.POST("/sidebar/collapse", s.event("sidebar_collapse", func(_ *gin.Context, sess *Session) (gin.H, error) {
		sess.Shell.ToggleSidebarCollapse()
		return nil, nil
	}))
	ui.POST("/theme/toggle", s.event("theme_toggle", func(_ *gin.Context, sess *Session) (gin.H, error) {
		sess.Shell.ToggleTheme()
		return nil, nil
	}))
	ui.POST("/key", s.event("key", s.key))
	ui.POST("/cv/toggle", s.event("cv_toggle", func(_ *gin.Context, sess *Session) (gin.H, error) {
		sess.CV.Toggle()
		return nil, nil
	}))
	ui.POST("/cv/select", s.event("cv_select", func(_ *gin.Context, sess *Session) (gin.H, error) {
		if sess.CV.Select(sess.Shell.Snapshot().Mobile) {
			sess.Shell.CloseSidebar()
		}
		return nil, nil
	}))
	ui.POST("/click", s.event("click", s.click))
	ui.POST("/reveal", s.event("reveal", s.reveal))

	return s, nil
}

// Engine exposes the router so other areas can mount their routes.
func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) Sessions() *Sessions { return s.sessions }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func (s *Server) healthz(c *gin.Context) {
	checks := gin.H{}
	status := http.StatusOK
	for name, p := range s.health {
		if err := p.Ping(c.Request.Context()); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{
		"status":         state,
		"checks":         checks,
		"sessions":       s.sessions.Len(),
		"content_loaded": s.content.Snapshot().LoadedAt,
	})
}

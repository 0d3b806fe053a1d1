// Package admin is the privacy-conscious admin area: a token-cookie login,
// the visitor dashboard, the contact inbox and visitor tracking.
package admin

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"embed"
	"encoding/hex"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mazichukwuka/portfolio/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	// TokenCookie holds the admin session token, scoped to /admin.
	TokenCookie = "admin_token"
	tokenMaxAge = 3600 * 24
)

// Backend is the storage the admin area reads and manages.
type Backend interface {
	RecordVisit(ctx context.Context, v store.Visit) error
	RecentVisits(ctx context.Context, limit int) ([]store.Visit, error)
	Stats(ctx context.Context, now time.Time) (*store.Stats, error)
	Messages(ctx context.Context, limit int) ([]store.StoredMessage, error)
	MarkRead(ctx context.Context, id int64) error
	DeleteMessage(ctx context.Context, id int64) error
}

// JobRunner triggers a background job by name.
type JobRunner interface {
	RunNow(name string) error
}

type Options struct {
	Username string
	Password string
	// Debug logs the generated token, for local development only.
	Debug         bool
	SecureCookies bool
	// RetentionJob is the job run by the privacy cleanup endpoint.
	RetentionJob    string
	RetentionMonths int
}

type Admin struct {
	opts    Options
	backend Backend
	jobs    JobRunner
	log     *slog.Logger
	tmpl    *template.Template

	token string
	salt  string
	now   func() time.Time
}

// New creates the admin area with a fresh token and IP hashing salt. Both live
// only as long as the process, so a restart logs everybody out.
func New(opts Options, backend Backend, jobs JobRunner, log *slog.Logger) (*Admin, error) {
	if log == nil {
		log = slog.Default()
	}
	token, err := randomHex(32)
	if err != nil {
		return nil, fmt.Errorf("generating admin token: %w", err)
	}
	salt, err := randomHex(32)
	if err != nil {
		return nil, fmt.Errorf("generating hashing salt: %w", err)
	}
	tmpl, err := template.New("admin").Funcs(template.FuncMap{
		"since": humanize.Time,
		"comma": humanize.Comma,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing admin templates: %w", err)
	}

	a := &Admin{
		opts:    opts,
		backend: backend,
		jobs:    jobs,
		log:     log,
		tmpl:    tmpl,
		token:   token,
		salt:    salt,
		now:     time.Now,
	}
	log.Info("Admin access available at /admin/login")
	if opts.Debug {
		log.Debug("Admin token (dev only)", slog.String("token", token))
	}
	return a, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashIP returns a salted, truncated hash of ip. It is stable for the lifetime
// of the process, which is what unique-visitor counts need.
func (a *Admin) HashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + a.salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func (a *Admin) validToken(token string) bool {
	return subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) == 1
}

func (a *Admin) validCredentials(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.opts.Username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.opts.Password))
	return u&p == 1
}

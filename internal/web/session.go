package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mazichukwuka/portfolio/internal/logfields"
	"github.com/mazichukwuka/portfolio/internal/metrics"
	"github.com/mazichukwuka/portfolio/internal/prefs"
	"github.com/mazichukwuka/portfolio/internal/reveal"
	"github.com/mazichukwuka/portfolio/internal/router"
	"github.com/mazichukwuka/portfolio/internal/shell"
	"github.com/mazichukwuka/portfolio/internal/ui"
	"github.com/mazichukwuka/portfolio/internal/viewport"
)

// SessionCookie carries the visitor session id.
const SessionCookie = "sid"

const (
	// DefaultMaxSessions caps the live sessions of one process.
	DefaultMaxSessions = 10000
	// DefaultUntouchedIdle expires sessions that never posted an event, such
	// as those of crawlers.
	DefaultUntouchedIdle = 2 * time.Minute
)

// viewportHeaders are the client hints consulted for the initial width.
var viewportHeaders = []string{"Sec-CH-Viewport-Width", "Viewport-Width"}

// Effect is a page-level side effect the browser applies after an event.
type Effect struct {
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
}

const (
	EffectTheme        = "theme"
	EffectLockScroll   = "lock-scroll"
	EffectUnlockScroll = "unlock-scroll"
	EffectScrollTop    = "scroll-top"
)

// effects records what the shell controller and the navigator ask of the
// document. It implements shell.Document and router.Scroller.
type effects struct {
	list []Effect
}

func (e *effects) SetTheme(t shell.Theme) { e.add(EffectTheme, string(t)) }
func (e *effects) LockScroll()            { e.add(EffectLockScroll, "") }
func (e *effects) UnlockScroll()          { e.add(EffectUnlockScroll, "") }
func (e *effects) ScrollToTop()           { e.add(EffectScrollTop, "") }

func (e *effects) add(kind, value string) {
	e.list = append(e.list, Effect{Kind: kind, Value: value})
}

func (e *effects) drain() []Effect {
	out := e.list
	e.list = nil
	if out == nil {
		out = []Effect{}
	}
	return out
}

// Session is the interaction state of one visitor. Its fields must only be
// used between Sessions.Acquire and the matching release.
type Session struct {
	ID string

	mu       sync.Mutex
	lastSeen time.Time
	closed   bool
	// touched is set once the page posts its first event.
	touched bool

	window  *viewport.Window
	cookies *prefs.CookieStore
	doc     *effects

	Shell  *shell.Controller
	Nav    *router.Navigator
	CV     *ui.Dropdown
	Reveal *reveal.Tracker

	releaseNav func()
}

// State is the session snapshot returned to the page.
type State struct {
	shell.State
	CVOpen bool `json:"cvOpen"`
}

func (s *Session) State() State {
	return State{State: s.Shell.Snapshot(), CVOpen: s.CV.IsOpen()}
}

// Effects returns and clears the pending side effects.
func (s *Session) Effects() []Effect {
	return s.doc.drain()
}

// Resize reports a new viewport width.
func (s *Session) Resize(width int) {
	s.window.Resize(width)
}

func (s *Session) touch() { s.touched = true }

func (s *Session) idle(cutoff, untouchedCutoff time.Time) bool {
	if !s.touched && s.lastSeen.Before(untouchedCutoff) {
		return true
	}
	return s.lastSeen.Before(cutoff)
}

func (s *Session) close() {
	if s.closed {
		return
	}
	s.closed = true
	s.releaseNav()
	s.Shell.Close()
}

// Sessions owns every live visitor session.
type Sessions struct {
	mu   sync.Mutex
	byID map[string]*Session

	table     *router.Table
	log       *slog.Logger
	recorder  metrics.Recorder
	secure    bool
	threshold float64
	now       func() time.Time

	// MaxLive bounds the live sessions. Creating one more evicts the least
	// recently seen, preferring sessions that never posted an event.
	MaxLive int
	// UntouchedIdle is the idle timeout of sessions that never posted an event.
	UntouchedIdle time.Duration
}

func NewSessions(table *router.Table, secure bool, log *slog.Logger, rec metrics.Recorder) *Sessions {
	if log == nil {
		log = slog.Default()
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Sessions{
		byID:      make(map[string]*Session),
		table:     table,
		log:       log,
		recorder:  rec,
		secure:    secure,
		threshold:     reveal.DefaultOptions().Threshold,
		now:           time.Now,
		MaxLive:       DefaultMaxSessions,
		UntouchedIdle: DefaultUntouchedIdle,
	}
}

// Acquire returns the session of the request, creating one when the request
// has none, and locks it. The release func unlocks it and must be called
// before the handler returns.
func (s *Sessions) Acquire(c *gin.Context) (*Session, func()) {
	for {
		sess := s.lookup(c)
		sess.mu.Lock()
		if sess.closed {
			sess.mu.Unlock()
			continue
		}
		sess.lastSeen = s.now()
		sess.cookies.Bind(c)
		return sess, func() {
			sess.cookies.Unbind()
			sess.mu.Unlock()
		}
	}
}

func (s *Sessions) lookup(c *gin.Context) *Session {
	if id, err := c.Cookie(SessionCookie); err == nil {
		s.mu.Lock()
		sess, ok := s.byID[id]
		s.mu.Unlock()
		if ok {
			return sess
		}
	}
	return s.create(c)
}

func (s *Sessions) create(c *gin.Context) *Session {
	id := uuid.NewString()
	log := s.log.With(logfields.Session(id))

	cookies := prefs.NewCookieStore()
	cookies.Secure = s.secure
	// The controller reads the stored theme while it mounts.
	cookies.Bind(c)
	defer cookies.Unbind()

	doc := &effects{}
	window := viewport.NewWindow(widthHint(c))
	sess := &Session{
		ID:       id,
		lastSeen: s.now(),
		window:   window,
		cookies:  cookies,
		doc:      doc,
		Shell:    shell.New(window, cookies, doc, log),
		Nav:      router.NewNavigator(s.table, doc),
		CV:       &ui.Dropdown{},
		Reveal:   reveal.NewTracker(s.threshold),
	}
	sess.releaseNav = sess.Nav.OnChange(func(router.Match) {
		sess.Shell.RouteChanged()
		sess.CV.Close()
	})

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, 0, "/", "", s.secure, true)

	s.mu.Lock()
	s.byID[id] = sess
	evicted := s.evictLocked(id)
	n := len(s.byID)
	s.mu.Unlock()

	for _, old := range evicted {
		old.mu.Lock()
		old.close()
		old.mu.Unlock()
	}
	if len(evicted) > 0 {
		log.Debug("Evicted sessions over the limit", logfields.Count(int64(len(evicted))))
	}

	s.recorder.SetSessions(n)
	log.Debug("Session started", slog.Int("width", window.Width()))
	return sess
}

func widthHint(c *gin.Context) int {
	for _, h := range viewportHeaders {
		if w, err := strconv.Atoi(c.GetHeader(h)); err == nil && w > 0 {
			return w
		}
	}
	return 0
}

// evictLocked removes the least recently seen sessions while more than MaxLive
// are held, never the one named keep. Untouched sessions go first. The caller
// closes the returned sessions after releasing s.mu.
func (s *Sessions) evictLocked(keep string) []*Session {
	var out []*Session
	for s.MaxLive > 0 && len(s.byID) > s.MaxLive {
		var (
			victim *Session
			best   evictKey
		)
		for id, sess := range s.byID {
			if id == keep || !sess.mu.TryLock() {
				continue
			}
			k := evictKey{touched: sess.touched, lastSeen: sess.lastSeen}
			sess.mu.Unlock()
			if victim == nil || k.before(best) {
				victim, best = sess, k
			}
		}
		if victim == nil {
			break
		}
		delete(s.byID, victim.ID)
		out = append(out, victim)
	}
	return out
}

type evictKey struct {
	touched  bool
	lastSeen time.Time
}

func (k evictKey) before(o evictKey) bool {
	if k.touched != o.touched {
		return !k.touched
	}
	return k.lastSeen.Before(o.lastSeen)
}

// Sweep closes sessions not seen since cutoff, and untouched sessions older
// than UntouchedIdle, and returns how many closed.
func (s *Sessions) Sweep(cutoff time.Time) int {
	untouchedCutoff := cutoff
	if s.UntouchedIdle > 0 {
		untouchedCutoff = s.now().Add(-s.UntouchedIdle)
	}

	s.mu.Lock()
	var idle []*Session
	for id, sess := range s.byID {
		// A session that is locked is serving a request and not idle.
		if !sess.mu.TryLock() {
			continue
		}
		if sess.idle(cutoff, untouchedCutoff) {
			idle = append(idle, sess)
			delete(s.byID, id)
		}
		sess.mu.Unlock()
	}
	n := len(s.byID)
	s.mu.Unlock()

	for _, sess := range idle {
		sess.mu.Lock()
		sess.close()
		sess.mu.Unlock()
	}
	s.recorder.SetSessions(n)
	return len(idle)
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Close ends every session.
func (s *Sessions) Close() {
	s.mu.Lock()
	all := s.byID
	s.byID = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range all {
		sess.mu.Lock()
		sess.close()
		sess.mu.Unlock()
	}
	s.recorder.SetSessions(0)
}

package admin

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazichukwuka/portfolio/internal/contact"
	"github.com/mazichukwuka/portfolio/internal/logfields"
	"github.com/mazichukwuka/portfolio/internal/store"
)

type fakeRunner struct{ ran []string }

func (f *fakeRunner) RunNow(name string) error {
	f.ran = append(f.ran, name)
	return nil
}

func setup(t *testing.T) (*Admin, *store.Store, *fakeRunner, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.Open(context.Background(), ":memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	runner := &fakeRunner{}
	a, err := New(Options{
		Username:        "admin",
		Password:        "secret",
		RetentionJob:    "visitor_retention",
		RetentionMonths: 12,
	}, st, runner, log)
	require.NoError(t, err)

	r := gin.New()
	r.Use(a.TrackingMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.Set(logfields.KeyPage, "home")
		c.String(http.StatusOK, "home")
	})
	r.GET("/static/app.css", func(c *gin.Context) { c.String(http.StatusOK, "css") })
	a.Register(r)
	return a, st, runner, r
}

func login(t *testing.T, r http.Handler) *http.Cookie {
	t.Helper()
	form := url.Values{"username": {"admin"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	for _, c := range w.Result().Cookies() {
		if c.Name == TokenCookie {
			return c
		}
	}
	t.Fatal("no admin cookie set")
	return nil
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, _, _, r := setup(t)

	form := url.Values{"username": {"admin"}, "password": {"admin123"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Empty(t, w.Result().Cookies())
}

func TestDashboardRequiresLogin(t *testing.T) {
	_, _, _, r := setup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "forged"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestDashboardAfterLogin(t *testing.T) {
	_, _, _, r := setup(t)
	cookie := login(t, r)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/admin", cookie.Path)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dashboard")
	assert.Contains(t, w.Body.String(), "/admin/logout")
}

func TestTrackingHashesAddresses(t *testing.T) {
	a, st, _, r := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	req.Header.Set("User-Agent", "test-agent")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var visits []store.Visit
	require.Eventually(t, func() bool {
		var err error
		visits, err = st.RecentVisits(context.Background(), 10)
		return err == nil && len(visits) == 1
	}, 2*time.Second, 10*time.Millisecond)

	v := visits[0]
	assert.Equal(t, a.HashIP("203.0.113.7"), v.HashedIP)
	assert.NotContains(t, v.HashedIP, "203.0.113.7")
	assert.Len(t, v.HashedIP, 16)
	assert.Equal(t, "home", v.Page)
	assert.Equal(t, "test-agent", v.UserAgent)
}

func TestTrackingSkips(t *testing.T) {
	_, st, _, r := setup(t)

	dnt := httptest.NewRequest(http.MethodGet, "/", nil)
	dnt.Header.Set("DNT", "1")
	r.ServeHTTP(httptest.NewRecorder(), dnt)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/privacy", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	time.Sleep(50 * time.Millisecond)
	visits, err := st.RecentVisits(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestHashIPStable(t *testing.T) {
	a, _, _, _ := setup(t)
	assert.Equal(t, a.HashIP("10.0.0.1"), a.HashIP("10.0.0.1"))
	assert.NotEqual(t, a.HashIP("10.0.0.1"), a.HashIP("10.0.0.2"))
}

func TestMessageActions(t *testing.T) {
	_, st, _, r := setup(t)
	cookie := login(t, r)

	id, err := st.SaveMessage(context.Background(), contact.Message{
		Name: "Ada", Email: "ada@example.com", Subject: "Hello", Body: "Hi there",
	})
	require.NoError(t, err)

	do := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodGet, "/admin/messages")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello")

	path := "/admin/messages/" + strconv.FormatInt(id, 10)
	assert.Equal(t, http.StatusOK, do(http.MethodPost, path+"/read").Code)
	assert.Equal(t, http.StatusOK, do(http.MethodDelete, path).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodDelete, path).Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodDelete, "/admin/messages/abc").Code)
}

func TestPrivacyCleanupRunsRetentionJob(t *testing.T) {
	_, _, runner, r := setup(t)
	cookie := login(t, r)

	req := httptest.NewRequest(http.MethodPost, "/admin/privacy/delete-visitor-data", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"visitor_retention"}, runner.ran)
}

func TestExportStats(t *testing.T) {
	_, _, _, r := setup(t)
	cookie := login(t, r)

	req := httptest.NewRequest(http.MethodGet, "/admin/export/stats", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "admin-stats.json")
	assert.Contains(t, w.Body.String(), `"total_visitors":0`)
}

func TestPrivacyPage(t *testing.T) {
	_, _, _, r := setup(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/privacy", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "after 12 months")
	assert.NotContains(t, w.Body.String(), "/admin/logout")
}

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mazichukwuka/portfolio/internal/content"
	"github.com/mazichukwuka/portfolio/internal/router"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, opts router.Options, mutate ...func(*Options)) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := content.OpenFS(content.Embedded(), "", quietLogger())
	require.NoError(t, err)

	o := Options{
		Table:   router.NewTable(opts),
		Content: store,
		Logger:  quietLogger(),
	}
	for _, m := range mutate {
		m(&o)
	}
	s, err := New(o)
	require.NoError(t, err)
	return s
}

// client keeps cookies between requests like a browser would.
type client struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]*http.Cookie
	headers map[string]string
}

func newClient(t *testing.T, h http.Handler) *client {
	return &client{t: t, h: h, cookies: make(map[string]*http.Cookie), headers: make(map[string]string)}
}

func (c *client) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for _, ck := range c.cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, nil, "")
}

func (c *client) form(path string, values url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
}

type eventResponse struct {
	State    State          `json:"state"`
	Effects  []Effect       `json:"effects"`
	Result   map[string]any `json:"result"`
	Revealed bool           `json:"revealed"`
}

func (c *client) event(path string, payload any) eventResponse {
	c.t.Helper()
	var body bytes.Buffer
	if payload == nil {
		payload = struct{}{}
	}
	require.NoError(c.t, json.NewEncoder(&body).Encode(payload))
	w := c.do(http.MethodPost, path, &body, "application/json")
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())

	var resp eventResponse
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func hasEffect(effects []Effect, kind string) bool {
	for _, e := range effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

var errDown = errors.New("database is locked")

package admin

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mazichukwuka/portfolio/internal/logfields"
	"github.com/mazichukwuka/portfolio/internal/store"
)

const authedKey = "admin_authed"

// untracked lists path prefixes that never count as page views.
var untracked = []string{
	"/static/",
	"/assets/",
	"/images/",
	"/admin",
	"/favicon",
	"/privacy",
	"/ui/",
	"/metrics",
	"/healthz",
}

// AuthMiddleware redirects to the login page unless the request carries the
// admin token.
func (a *Admin) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(TokenCookie)
		if err != nil || !a.validToken(token) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Set(authedKey, true)
		c.Next()
	}
}

// TrackingMiddleware records successful GET page views with a hashed client
// address. Requests sending DNT: 1 are not recorded.
func (a *Admin) TrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || skipTracking(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		v := store.Visit{
			HashedIP:  a.HashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Page:      c.GetString(logfields.KeyPage),
			Timestamp: a.now(),
		}
		go a.record(v)
	}
}

func (a *Admin) record(v store.Visit) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.backend.RecordVisit(ctx, v); err != nil {
		a.log.Warn("Error recording visitor", logfields.Path(v.Path), logfields.Error(err))
	}
}

func skipTracking(path string) bool {
	for _, p := range untracked {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

package web

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mazichukwuka/portfolio/internal/logfields"
	"github.com/mazichukwuka/portfolio/internal/metrics"
)

// requestLogger logs every request with slog and feeds the request metrics.
// Static assets are logged at debug level.
func requestLogger(log *slog.Logger, rec metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		rec.ObserveRequest(route, status, elapsed)

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		case strings.HasPrefix(c.Request.URL.Path, "/static/"):
			level = slog.LevelDebug
		}
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			logfields.Path(c.Request.URL.Path),
			logfields.Status(status),
			logfields.DurationMS(float64(elapsed.Microseconds()) / 1000),
		}
		if page := c.GetString(logfields.KeyPage); page != "" {
			attrs = append(attrs, logfields.Page(page))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}
		log.LogAttrs(c.Request.Context(), level, "Request", attrs...)
	}
}

package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/mazichukwuka/portfolio/internal/logfields"
	"github.com/mazichukwuka/portfolio/internal/store"
)

const (
	visitorsLimit = 200
	messagesLimit = 200
)

// Register mounts the privacy page, the login flow and the protected admin
// routes.
func (a *Admin) Register(r gin.IRouter) {
	r.GET("/privacy", func(c *gin.Context) {
		a.html(c, http.StatusOK, "privacy", gin.H{
			"title":     "Privacy Policy",
			"retention": a.opts.RetentionMonths,
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		a.html(c, http.StatusOK, "login", gin.H{"title": "Admin Login"})
	})
	r.POST("/admin/login", a.login)
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(TokenCookie, "", -1, "/admin", "", a.opts.SecureCookies, true)
		a.log.Info("Admin logout", slog.String("client", a.HashIP(c.ClientIP())))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	g := r.Group("/admin")
	g.Use(a.AuthMiddleware())

	g.GET("", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admin/dashboard") })
	g.GET("/dashboard", a.dashboard)
	g.GET("/api/stats", a.apiStats)
	g.GET("/visitors", a.visitors)
	g.GET("/messages", a.messages)
	g.POST("/messages/:id/read", a.markRead)
	g.DELETE("/messages/:id", a.deleteMessage)
	g.POST("/privacy/delete-visitor-data", a.privacyCleanup)
	g.GET("/export/stats", a.exportStats)
}

func (a *Admin) html(c *gin.Context, status int, name string, data gin.H) {
	data["authed"] = c.GetBool(authedKey)
	c.Render(status, render.HTML{Template: a.tmpl, Name: name, Data: data})
}

func (a *Admin) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if !a.validCredentials(username, password) {
		a.log.Warn("Failed admin login attempt", slog.String("client", a.HashIP(c.ClientIP())))
		a.html(c, http.StatusUnauthorized, "login", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
		return
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(TokenCookie, a.token, tokenMaxAge, "/admin", "", a.opts.SecureCookies, true)
	a.log.Info("Admin login successful", slog.String("client", a.HashIP(c.ClientIP())))
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (a *Admin) dashboard(c *gin.Context) {
	stats, err := a.backend.Stats(c.Request.Context(), a.now())
	if err != nil {
		a.log.Error("Error loading admin stats", logfields.Error(err))
		a.html(c, http.StatusInternalServerError, "error", gin.H{"error": "Failed to load statistics"})
		return
	}
	a.html(c, http.StatusOK, "dashboard", gin.H{"title": "Dashboard", "stats": stats})
}

func (a *Admin) apiStats(c *gin.Context) {
	stats, err := a.backend.Stats(c.Request.Context(), a.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (a *Admin) visitors(c *gin.Context) {
	visits, err := a.backend.RecentVisits(c.Request.Context(), visitorsLimit)
	if err != nil {
		a.log.Error("Error loading visitors", logfields.Error(err))
		a.html(c, http.StatusInternalServerError, "error", gin.H{"error": "Failed to load visitors"})
		return
	}
	a.html(c, http.StatusOK, "visitors", gin.H{"title": "Visitors", "visitors": visits})
}

func (a *Admin) messages(c *gin.Context) {
	msgs, err := a.backend.Messages(c.Request.Context(), messagesLimit)
	if err != nil {
		a.log.Error("Error loading messages", logfields.Error(err))
		a.html(c, http.StatusInternalServerError, "error", gin.H{"error": "Failed to load messages"})
		return
	}
	a.html(c, http.StatusOK, "messages", gin.H{"title": "Messages", "messages": msgs})
}

func (a *Admin) markRead(c *gin.Context) {
	a.withMessage(c, func(id int64) error { return a.backend.MarkRead(c.Request.Context(), id) }, "Message marked as read")
}

func (a *Admin) deleteMessage(c *gin.Context) {
	a.withMessage(c, func(id int64) error { return a.backend.DeleteMessage(c.Request.Context(), id) }, "Message deleted successfully")
}

func (a *Admin) withMessage(c *gin.Context, fn func(id int64) error, ok string) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
		return
	}
	err = fn(id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
	case err != nil:
		a.log.Error("Error updating message", slog.String("message_id", c.Param("id")), logfields.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": ok})
	}
}

func (a *Admin) privacyCleanup(c *gin.Context) {
	if a.jobs == nil || a.opts.RetentionJob == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Privacy cleanup is not scheduled"})
		return
	}
	if err := a.jobs.RunNow(a.opts.RetentionJob); err != nil {
		a.log.Error("Error starting privacy cleanup", logfields.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start privacy cleanup"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
}

func (a *Admin) exportStats(c *gin.Context) {
	stats, err := a.backend.Stats(c.Request.Context(), a.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
	a.log.Info("Admin stats exported", slog.String("client", a.HashIP(c.ClientIP())))
	c.JSON(http.StatusOK, stats)
}

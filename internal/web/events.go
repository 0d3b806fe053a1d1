package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mazichukwuka/portfolio/internal/shell"
)

type eventFunc func(c *gin.Context, sess *Session) (gin.H, error)

// event wraps a UI event handler. Every event answers with the session state
// and the side effects the page must apply.
func (s *Server) event(name string, fn eventFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, release := s.sessions.Acquire(c)
		defer release()
		sess.touch()

		extra, err := fn(c, sess)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.recorder.IncUIEvent(name)

		resp := gin.H{"state": sess.State(), "effects": sess.Effects()}
		for k, v := range extra {
			resp[k] = v
		}
		c.JSON(http.StatusOK, resp)
	}
}

type viewportEvent struct {
	Width int `json:"width" binding:"required,min=1"`
}

func (s *Server) resize(c *gin.Context, sess *Session) (gin.H, error) {
	var ev viewportEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		return nil, err
	}
	sess.Resize(ev.Width)
	return nil, nil
}

func (s *Server) key(c *gin.Context, sess *Session) (gin.H, error) {
	var ev shell.KeyEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		return nil, err
	}
	return gin.H{"result": sess.Shell.HandleKey(ev)}, nil
}

type clickEvent struct {
	Inside bool `json:"inside"`
}

func (s *Server) click(c *gin.Context, sess *Session) (gin.H, error) {
	var ev clickEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		return nil, err
	}
	sess.CV.Click(ev.Inside)
	return nil, nil
}

type revealEvent struct {
	ID    string  `json:"id" binding:"required"`
	Ratio float64 `json:"ratio"`
}

func (s *Server) reveal(c *gin.Context, sess *Session) (gin.H, error) {
	var ev revealEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		return nil, err
	}
	return gin.H{"revealed": sess.Reveal.Observe(ev.ID, ev.Ratio)}, nil
}

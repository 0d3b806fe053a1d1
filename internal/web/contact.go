package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mazichukwuka/portfolio/internal/contact"
	"github.com/mazichukwuka/portfolio/internal/logfields"
	"github.com/mazichukwuka/portfolio/internal/metrics"
	"github.com/mazichukwuka/portfolio/internal/router"
)

// contactBody feeds both the contact page and the contact-result fragment.
type contactBody struct {
	Form    contact.Message
	Errors  contact.FieldErrors
	Done    bool
	Success bool
	Text    string
}

func (s *Server) submitContact(c *gin.Context) {
	var m contact.Message
	body := contactBody{Done: true}

	err := c.ShouldBind(&m)
	if err == nil {
		m, err = s.contact.Submit(c.Request.Context(), m)
	}
	var fe contact.FieldErrors
	switch {
	case err == nil:
		s.recorder.IncContact(metrics.ResultSuccess)
		body.Success = true
		body.Text = contact.SuccessText
	case errors.As(err, &fe):
		s.recorder.IncContact(metrics.ResultInvalid)
		body.Form = m
		body.Errors = fe
		body.Text = "Please correct the highlighted fields."
	default:
		s.recorder.IncContact(metrics.ResultFailed)
		s.log.Warn("Contact submission failed", logfields.Error(err))
		body.Form = m
		body.Text = contact.FailureText
	}

	// HTMX swaps the fragment into the form; without it the whole page is
	// rendered again.
	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, "contact-result", body)
		return
	}

	sess, release := s.sessions.Acquire(c)
	defer release()
	match, _ := sess.Nav.Navigate("/contact")
	c.Set(logfields.KeyPage, router.Contact.String())
	v := s.newView(c, sess, match.Route, s.content.Snapshot())
	status := http.StatusOK
	if !body.Success && body.Errors != nil {
		status = http.StatusUnprocessableEntity
	}
	s.render(c, sess, status, "contact", v, body)
}

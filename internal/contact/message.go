// Package contact validates contact form submissions and hands them to a relay.
package contact

import (
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid contact message")

const (
	maxNameLen    = 120
	maxSubjectLen = 200
	maxBodyLen    = 5000
)

// SuccessText is shown after a message was accepted.
const SuccessText = "Thank you for your message! I will get back to you soon."

// FailureText is shown when a relay fails.
const FailureText = "Sorry, there was an error sending your message. Please try again later."

// Message is one contact form submission.
type Message struct {
	Name     string    `form:"name" json:"name"`
	Email    string    `form:"email" json:"email"`
	Subject  string    `form:"subject" json:"subject"`
	Body     string    `form:"message" json:"message"`
	Received time.Time `form:"-" json:"received"`
}

// FieldErrors maps form field names to a human readable problem.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + fe[k]
	}
	return strings.Join(parts, "; ")
}

// Normalize trims surrounding whitespace from every field.
func (m Message) Normalize() Message {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Body = strings.TrimSpace(m.Body)
	return m
}

// Validate checks that every field is present and the address parses. The
// returned error wraps ErrInvalid and a FieldErrors.
func (m Message) Validate() error {
	fe := FieldErrors{}
	required := func(field, v string, max int) {
		switch {
		case v == "":
			fe[field] = "is required"
		case utf8.RuneCountInString(v) > max:
			fe[field] = fmt.Sprintf("must be at most %d characters", max)
		}
	}
	required("name", m.Name, maxNameLen)
	required("subject", m.Subject, maxSubjectLen)
	required("message", m.Body, maxBodyLen)

	if m.Email == "" {
		fe["email"] = "is required"
	} else if addr, err := mail.ParseAddress(m.Email); err != nil || addr.Address != m.Email {
		fe["email"] = "is not a valid address"
	}
	for field, v := range map[string]string{"name": m.Name, "subject": m.Subject} {
		if _, bad := fe[field]; !bad && strings.ContainsAny(v, "\r\n") {
			fe[field] = "must be a single line"
		}
	}

	if len(fe) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, fe)
}

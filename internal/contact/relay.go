package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/mazichukwuka/portfolio/internal/logfields"
)

// Relay delivers an accepted message somewhere.
type Relay interface {
	Name() string
	Send(ctx context.Context, m Message) error
}

// LogRelay only logs the submission. It is the default and never fails.
type LogRelay struct {
	Log *slog.Logger
}

func (LogRelay) Name() string { return "log" }

func (r LogRelay) Send(_ context.Context, m Message) error {
	log := r.Log
	if log == nil {
		log = slog.Default()
	}
	log.Info("Contact form submitted",
		logfields.Relay(r.Name()),
		slog.String("from", m.Email),
		slog.String("subject", m.Subject),
		slog.Int("length", len(m.Body)))
	return nil
}

// SendMailFunc matches smtp.SendMail.
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPRelay mails the message to the site owner.
type SMTPRelay struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	// SendMail defaults to smtp.SendMail.
	SendMail SendMailFunc
}

func (*SMTPRelay) Name() string { return "smtp" }

func (r *SMTPRelay) Send(ctx context.Context, m Message) error {
	if r.User == "" || r.Pass == "" {
		return errors.New("SMTP credentials not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	send := r.SendMail
	if send == nil {
		send = smtp.SendMail
	}
	auth := smtp.PlainAuth("", r.User, r.Pass, r.Host)
	if err := send(r.Host+":"+r.Port, auth, r.User, []string{r.To}, r.compose(m)); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

func (r *SMTPRelay) compose(m Message) []byte {
	var b strings.Builder
	b.WriteString("To: " + r.To + "\r\n")
	b.WriteString("Subject: Portfolio Contact: " + m.Subject + "\r\n")
	b.WriteString("From: " + r.User + "\r\n")
	b.WriteString("Reply-To: " + m.Email + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "New contact form submission from your portfolio:\r\n\r\nName: %s\r\nEmail: %s\r\nSubject: %s\r\nMessage:\r\n%s\r\n\r\n---\r\nSent from your portfolio contact form\r\n",
		m.Name, m.Email, m.Subject, strings.ReplaceAll(m.Body, "\n", "\r\n"))
	return []byte(b.String())
}

// Inbox persists messages.
type Inbox interface {
	SaveMessage(ctx context.Context, m Message) (int64, error)
}

// StoreRelay keeps messages in an inbox for the admin area.
type StoreRelay struct {
	Inbox Inbox
}

func (StoreRelay) Name() string { return "store" }

func (r StoreRelay) Send(ctx context.Context, m Message) error {
	if _, err := r.Inbox.SaveMessage(ctx, m); err != nil {
		return fmt.Errorf("saving message: %w", err)
	}
	return nil
}

// Multi sends to every relay in order. All relays are tried; the errors are
// joined.
type Multi []Relay

func (m Multi) Name() string {
	names := make([]string, len(m))
	for i, r := range m {
		names[i] = r.Name()
	}
	return strings.Join(names, "+")
}

func (m Multi) Send(ctx context.Context, msg Message) error {
	var errs []error
	for _, r := range m {
		if err := r.Send(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name(), err))
		}
	}
	return errors.Join(errs...)
}

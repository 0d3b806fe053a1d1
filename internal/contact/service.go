package contact

import (
	"context"
	"log/slog"
	"time"

	"github.com/mazichukwuka/portfolio/internal/logfields"
)

// Service accepts form submissions.
type Service struct {
	relay Relay
	log   *slog.Logger
	now   func() time.Time
}

func NewService(relay Relay, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	if relay == nil {
		relay = LogRelay{Log: log}
	}
	return &Service{relay: relay, log: log, now: time.Now}
}

func (s *Service) Relay() Relay { return s.relay }

// Submit normalizes and validates m, then relays it. Validation errors wrap
// ErrInvalid; anything else is a delivery failure.
func (s *Service) Submit(ctx context.Context, m Message) (Message, error) {
	m = m.Normalize()
	if err := m.Validate(); err != nil {
		return m, err
	}
	m.Received = s.now().UTC()
	if err := s.relay.Send(ctx, m); err != nil {
		s.log.Error("Relaying contact message failed",
			logfields.Relay(s.relay.Name()),
			logfields.Error(err))
		return m, err
	}
	return m, nil
}

package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/mazichukwuka/portfolio/internal/logfields"
)

const (
	RetentionJobName    = "visitor_retention"
	SessionSweepJobName = "session_sweep"
)

// VisitCleaner deletes visits older than a cutoff.
type VisitCleaner interface {
	CleanupVisits(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sweeper closes sessions idle since before a cutoff.
type Sweeper interface {
	Sweep(cutoff time.Time) int
}

// Retention removes visitor records older than months.
func Retention(c VisitCleaner, months int, log *slog.Logger) Job {
	return Job{
		Name:       RetentionJobName,
		Interval:   24 * time.Hour,
		RunOnStart: true,
		Run: func(ctx context.Context) error {
			n, err := c.CleanupVisits(ctx, time.Now().AddDate(0, -months, 0))
			if err != nil {
				return err
			}
			if n > 0 {
				log.Info("Privacy cleanup removed old visitor records",
					logfields.Job(RetentionJobName), logfields.Count(n))
			}
			return nil
		},
	}
}

// SessionSweep closes sessions that have been idle for longer than idle.
func SessionSweep(s Sweeper, idle, every time.Duration, log *slog.Logger) Job {
	return Job{
		Name:     SessionSweepJobName,
		Interval: every,
		Run: func(context.Context) error {
			if n := s.Sweep(time.Now().Add(-idle)); n > 0 {
				log.Debug("Swept idle sessions",
					logfields.Job(SessionSweepJobName), logfields.Count(int64(n)))
			}
			return nil
		},
	}
}

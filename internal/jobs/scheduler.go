// Package jobs runs the periodic housekeeping tasks: visitor data retention
// and the idle session sweep.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/mazichukwuka/portfolio/internal/logfields"
	"github.com/mazichukwuka/portfolio/internal/metrics"
)

// Job is a named periodic task.
type Job struct {
	Name       string
	Interval   time.Duration
	RunOnStart bool
	Run        func(ctx context.Context) error
}

// Scheduler wraps a gocron scheduler.
type Scheduler struct {
	scheduler gocron.Scheduler
	log       *slog.Logger
	recorder  metrics.Recorder

	mu   sync.Mutex
	jobs map[string]gocron.Job
}

func NewScheduler(log *slog.Logger, rec metrics.Recorder) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Scheduler{scheduler: s, log: log, recorder: rec, jobs: make(map[string]gocron.Job)}, nil
}

// Add schedules j. ctx is handed to every run.
func (s *Scheduler) Add(ctx context.Context, j Job) (string, error) {
	opts := []gocron.JobOption{
		gocron.WithName(j.Name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if j.RunOnStart {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(j.Interval),
		gocron.NewTask(s.execute, ctx, j),
		opts...,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create job %s: %w", j.Name, err)
	}
	s.mu.Lock()
	s.jobs[j.Name] = job
	s.mu.Unlock()
	return job.ID().String(), nil
}

// RunNow triggers the named job outside its schedule.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown job %q", name)
	}
	return job.RunNow()
}

func (s *Scheduler) Start() {
	s.log.Info("Starting scheduler")
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	s.log.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

func (s *Scheduler) execute(ctx context.Context, j Job) {
	start := time.Now()
	err := j.Run(ctx)
	s.recorder.IncJobRun(j.Name, err == nil)
	if err != nil {
		s.log.Error("Job failed", logfields.Job(j.Name), logfields.Error(err))
		return
	}
	s.log.Debug("Job finished", logfields.Job(j.Name), logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
}

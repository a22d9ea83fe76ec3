package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Job is the unit of work run on every tick. It gets a context bounded by the
// scheduler's job timeout.
type Job func(ctx context.Context) error

// Scheduler runs a single job on a fixed interval. Runs never overlap: a tick
// that fires while the previous run is still going is skipped.
type Scheduler struct {
	scheduler *gocron.Scheduler
	name      string
	job       Job
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTimeout bounds each run. Defaults to the interval.
func WithTimeout(d time.Duration) Option {
	return func(s *Scheduler) { s.timeout = d }
}

// WithLogger sets the logger used for run outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// New creates a new Scheduler for job.
func New(name string, interval time.Duration, job Job, opts ...Option) *Scheduler {
	s := &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		name:      name,
		job:       job,
		interval:  interval,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.timeout <= 0 {
		s.timeout = interval
	}
	s.logger = s.logger.With("component", "scheduler", "job", name)
	return s
}

// Start schedules the job and starts the underlying scheduler. The first run
// happens immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.job == nil {
		return errors.New("scheduler: no job configured")
	}
	if s.interval <= 0 {
		return errors.New("scheduler: interval must be positive")
	}

	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", "interval", s.interval.String())
	return nil
}

func (s *Scheduler) run() {
	s.mu.Lock()
	parent := s.ctx
	s.mu.Unlock()
	if parent == nil || parent.Err() != nil {
		return
	}

	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()

	started := time.Now()
	if err := s.job(ctx); err != nil {
		s.logger.Warn("job failed", "error", err, "duration", time.Since(started).String())
		return
	}
	s.logger.Debug("job completed", "duration", time.Since(started).String())
}

// Stop stops the scheduler and cancels any run in flight.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

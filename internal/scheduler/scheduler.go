package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Sweeper is a periodic pass over the store. Both the expense recurrence
// sweep and the invoice overdue sweep implement it.
type Sweeper interface {
	Name() string
	Sweep(ctx context.Context, now time.Time) error
}

// Scheduler runs the registered sweeps once at startup and then on a fixed
// interval for the lifetime of the process. Failures are caught and logged,
// never propagated; a failed sweep simply retries on the next tick. Tests
// bypass it entirely by calling the sweep functions directly.
type Scheduler struct {
	cron     *cron.Cron
	interval time.Duration
	sweepers []Sweeper
}

func New(interval time.Duration, sweepers ...Sweeper) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		interval: interval,
		sweepers: sweepers,
	}
}

// Start runs all sweeps immediately, then schedules them on the interval.
func (s *Scheduler) Start() error {
	s.runAll()
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, s.runAll); err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Str("interval", s.interval.String()).Msg("Recurrence scheduler started")
	return nil
}

// Stop halts the timer. A sweep already in flight finishes on its own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Info().Msg("Recurrence scheduler stopped")
}

// Func adapts a bare sweep function to the Sweeper interface.
type Func struct {
	Label string
	Run   func(ctx context.Context, now time.Time) error
}

func (f Func) Name() string { return f.Label }

func (f Func) Sweep(ctx context.Context, now time.Time) error { return f.Run(ctx, now) }

func (s *Scheduler) runAll() {
	now := time.Now()
	for _, sw := range s.sweepers {
		if err := sw.Sweep(context.Background(), now); err != nil {
			log.Error().Err(err).Str("sweep", sw.Name()).Msg("Scheduled sweep failed")
		}
	}
}

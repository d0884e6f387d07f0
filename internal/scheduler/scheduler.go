package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler runs the periodic usage report.
type Scheduler struct {
	cron       *cron.Cron
	spec       string
	ctx        context.Context
	cancel     context.CancelFunc
	log        zerolog.Logger
	reportFunc func(ctx context.Context) error
}

// New creates a scheduler for a standard 5-field cron spec evaluated in UTC.
func New(spec string, log zerolog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		spec:   spec,
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
}

func (s *Scheduler) SetReportFunction(f func(ctx context.Context) error) {
	s.reportFunc = f
}

// Start registers the report job and starts the cron loop. Without a report
// function or spec it does nothing.
func (s *Scheduler) Start() error {
	if s.reportFunc == nil || s.spec == "" {
		s.log.Warn().Msg("report job not configured, scheduler idle")
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, s.runReport)
	if err != nil {
		return fmt.Errorf("invalid report schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.log.Info().Str("schedule", s.spec).Msg("scheduler started")
	return nil
}

func (s *Scheduler) runReport() {
	s.log.Info().Msg("running scheduled usage report")
	if err := s.reportFunc(s.ctx); err != nil {
		s.log.Error().Err(err).Msg("usage report failed")
	}
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}

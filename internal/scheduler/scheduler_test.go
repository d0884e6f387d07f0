package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestStartWithoutReportFunctionIsIdle(t *testing.T) {
	s := New("0 21 * * *", zerolog.Nop())
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.IsRunning() {
		t.Fatalf("scheduler should be idle")
	}
	s.Stop()
}

func TestStartRejectsInvalidSpec(t *testing.T) {
	s := New("every day", zerolog.Nop())
	s.SetReportFunction(func(context.Context) error { return nil })
	if err := s.Start(); err == nil {
		t.Fatalf("expected error for invalid spec")
	}
	s.Stop()
}

func TestStartRegistersJob(t *testing.T) {
	s := New("0 21 * * *", zerolog.Nop())
	s.SetReportFunction(func(context.Context) error { return nil })
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !s.IsRunning() {
		t.Fatalf("job not registered")
	}
	s.Stop()
}

func TestRunReportPassesContextAndSurvivesErrors(t *testing.T) {
	s := New("@daily", zerolog.Nop())
	calls := 0
	s.SetReportFunction(func(ctx context.Context) error {
		calls++
		if ctx.Err() != nil {
			t.Errorf("context already cancelled")
		}
		return errors.New("boom")
	})
	s.runReport()
	s.runReport()
	if calls != 2 {
		t.Fatalf("want 2 calls, got %d", calls)
	}
	s.Stop()
}

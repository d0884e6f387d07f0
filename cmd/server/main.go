package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"prompt-backend/internal/analytics"
	"prompt-backend/internal/auth"
	"prompt-backend/internal/config"
	"prompt-backend/internal/history"
	"prompt-backend/internal/logger"
	"prompt-backend/internal/responder"
	"prompt-backend/internal/scheduler"
	"prompt-backend/internal/server"
	"prompt-backend/internal/storage"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	lg, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
		Output:   cfg.LogOutput,
		FilePath: cfg.LogFilePath,
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	users := auth.DefaultUsers
	if cfg.CredentialsFilePath != "" {
		users, err = auth.LoadCredentialsFile(cfg.CredentialsFilePath)
		if err != nil {
			lg.Fatal().Err(err).Msg("failed to load credentials")
		}
	}
	creds := auth.NewCredentials(users)

	responses := responder.DefaultResponses
	if cfg.ResponsesFilePath != "" {
		responses, err = responder.LoadFile(cfg.ResponsesFilePath)
		if err != nil {
			lg.Fatal().Err(err).Msg("failed to load responses")
		}
	}
	resp, err := responder.New(responses)
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to init responder")
	}

	repo, closeRepo, err := newHistoryRepository(ctx, cfg)
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to init history repository")
	}
	defer closeRepo()

	store, err := history.NewStore(ctx, repo, lg)
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to load history")
	}

	var rec storage.Recorder
	if cfg.InteractionLogPath != "" {
		fr, err := storage.NewFileRecorder(cfg.InteractionLogPath)
		if err != nil {
			lg.Warn().Err(err).Msg("failed to init interaction log, continuing without it")
		} else {
			rec = fr
			defer func() {
				if err := fr.Close(); err != nil {
					lg.Warn().Err(err).Msg("failed to close interaction log")
				}
			}()
		}
	}

	sched := scheduler.New(cfg.ReportSchedule, lg)
	if rec != nil {
		sched.SetReportFunction(dailyReport(rec, lg))
	}
	if err := sched.Start(); err != nil {
		lg.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer sched.Stop()

	srv := server.New(server.Options{
		Addr:        cfg.HTTPAddr,
		Credentials: creds,
		Tokens:      auth.NewRegistry(),
		History:     store,
		Responder:   resp,
		Recorder:    rec,
		Logger:      lg,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error().Err(err).Msg("http server stopped")
		}
	case <-ctx.Done():
		lg.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			lg.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

func newHistoryRepository(ctx context.Context, cfg *config.Config) (history.Repository, func(), error) {
	noop := func() {}
	switch cfg.HistoryBackend {
	case config.BackendFile:
		repo, err := history.NewFileRepository(cfg.HistoryFilePath)
		return repo, noop, err
	case config.BackendBolt:
		repo, err := history.NewBoltRepository(cfg.HistoryBoltPath)
		return repo, noop, err
	case config.BackendRedis:
		repo, err := history.NewRedisRepository(ctx, cfg.RedisURL, cfg.RedisHistoryKey)
		if err != nil {
			return nil, noop, err
		}
		return repo, func() { _ = repo.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown history backend: %s", cfg.HistoryBackend)
	}
}

func dailyReport(rec storage.Recorder, lg zerolog.Logger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		events, err := rec.LoadInteractions()
		if err != nil {
			return fmt.Errorf("load interactions: %w", err)
		}
		stats := analytics.AnalyzeDailyLogs(events, time.Now().UTC())
		lg.Info().
			Str("date", stats.Date).
			Int("prompts", stats.TotalPrompts).
			Int("users", stats.UniqueUsers).
			Msg(stats.GenerateReportSummary())
		return nil
	}
}

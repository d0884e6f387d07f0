package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"prompt-backend/internal/auth"
	"prompt-backend/internal/history"
	"prompt-backend/internal/storage"
)

type Authenticator interface {
	Authenticate(username, password string) bool
}

type TokenStore interface {
	auth.Resolver
	Issue(username string) string
}

type HistoryStore interface {
	Append(ctx context.Context, username string, entry history.Entry) error
	Get(username string) []history.Entry
}

type Responder interface {
	Respond(prompt string) string
}

// Options wires the server's collaborators. Recorder is optional.
type Options struct {
	Addr        string
	Credentials Authenticator
	Tokens      TokenStore
	History     HistoryStore
	Responder   Responder
	Recorder    storage.Recorder
	Logger      zerolog.Logger
	Now         func() time.Time
}

type Server struct {
	echo      *echo.Echo
	http      *http.Server
	creds     Authenticator
	tokens    TokenStore
	history   HistoryStore
	responder Responder
	recorder  storage.Recorder
	log       zerolog.Logger
	now       func() time.Time
}

func New(opts Options) *Server {
	s := &Server{
		creds:     opts.Credentials,
		tokens:    opts.Tokens,
		history:   opts.History,
		responder: opts.Responder,
		recorder:  opts.Recorder,
		log:       opts.Logger,
		now:       opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = sonicSerializer{}
	e.HTTPErrorHandler = s.handleError

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(s.requestLogger())
	e.Use(middleware.Recover())

	e.GET("/", s.handleRoot)
	e.POST("/login", s.handleLogin)
	e.POST("/prompt", s.handlePrompt, s.requireUser)
	e.GET("/history", s.handleHistory, s.requireUser)

	s.echo = e
	s.http = &http.Server{
		Addr:         opts.Addr,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving until Shutdown is called. It returns
// http.ErrServerClosed after a shutdown, even one that happened before Start.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("starting http server")
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := s.log.Info()
			if v.Error != nil {
				ev = s.log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

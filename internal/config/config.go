package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type HistoryBackend string

const (
	BackendFile  HistoryBackend = "file"
	BackendBolt  HistoryBackend = "bolt"
	BackendRedis HistoryBackend = "redis"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// History persistence
	HistoryBackend  HistoryBackend `env:"HISTORY_BACKEND" envDefault:"file"`
	HistoryFilePath string         `env:"HISTORY_FILE_PATH" envDefault:"prompt_history.json"`
	HistoryBoltPath string         `env:"HISTORY_BOLT_PATH" envDefault:"data/history.bolt"`
	RedisURL        string         `env:"REDIS_URL"`
	RedisHistoryKey string         `env:"REDIS_HISTORY_KEY" envDefault:"prompt_history"`

	// Optional overrides for the built-in users and canned responses
	CredentialsFilePath string `env:"CREDENTIALS_FILE_PATH"`
	ResponsesFilePath   string `env:"RESPONSES_FILE_PATH"`

	// Interaction log and daily report
	InteractionLogPath string `env:"INTERACTION_LOG_PATH" envDefault:"logs/interactions.jsonl"`
	ReportSchedule     string `env:"REPORT_SCHEDULE" envDefault:"0 21 * * *"`

	// Logging
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"console"`
	LogOutput   string `env:"LOG_OUTPUT" envDefault:"stdout"`
	LogFilePath string `env:"LOG_FILE_PATH" envDefault:"logs/server.log"`
}

// Parse reads the configuration from the environment.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func New() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

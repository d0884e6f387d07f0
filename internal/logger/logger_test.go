package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewRejectsUnknownOutput(t *testing.T) {
	if _, err := New(Config{Level: "info", Output: "syslog"}); err == nil {
		t.Fatalf("expected error for unknown output")
	}
}

func TestNewWritesJSONToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "server.log")
	l, err := New(Config{Level: "debug", Format: "json", Output: "file", FilePath: p})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Info().Str("user", "alice").Msg("hello")

	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, `"user":"alice"`) || !strings.Contains(line, `"message":"hello"`) {
		t.Fatalf("unexpected log line: %q", line)
	}
}

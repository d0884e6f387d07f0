package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// ErrRecorderClosed is returned by AppendInteraction after Close.
var ErrRecorderClosed = errors.New("interaction log closed")

// FileRecorder appends events to a JSON Lines file. The file stays open for
// appending until Close; each event lands as a single write.
type FileRecorder struct {
	path string
	mu   sync.Mutex
	f    *os.File
}

// NewFileRecorder creates the parent directory and the log file if needed.
// Existing content is kept.
func NewFileRecorder(path string) (*FileRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure interaction log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open interaction log: %w", err)
	}
	if err := terminateLastLine(path, f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &FileRecorder{path: path, f: f}, nil
}

// terminateLastLine adds a newline if a previous run left the last event
// unterminated, so the next append starts on its own line.
func terminateLastLine(path string, w io.Writer) error {
	rf, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open interaction log: %w", err)
	}
	defer func() {
		_ = rf.Close()
	}()
	st, err := rf.Stat()
	if err != nil {
		return fmt.Errorf("stat interaction log: %w", err)
	}
	if st.Size() == 0 {
		return nil
	}
	last := make([]byte, 1)
	if _, err := rf.ReadAt(last, st.Size()-1); err != nil {
		return fmt.Errorf("read interaction log: %w", err)
	}
	if last[0] == '\n' {
		return nil
	}
	if _, err := w.Write([]byte{'\n'}); err != nil {
		return fmt.Errorf("terminate interaction log: %w", err)
	}
	return nil
}

// AppendInteraction writes ev as one line. Safe for concurrent use.
func (r *FileRecorder) AppendInteraction(ev Event) error {
	line, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	line = append(line, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.f == nil {
		return ErrRecorderClosed
	}
	if _, err := r.f.Write(line); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// LoadInteractions skips lines that do not decode.
func (r *FileRecorder) LoadInteractions() ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open interaction log: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var events []Event
	br := bufio.NewReader(f)
	for {
		line, readErr := br.ReadBytes('\n')
		if line = bytes.TrimSpace(line); len(line) > 0 {
			var ev Event
			if json.Unmarshal(line, &ev) == nil {
				events = append(events, ev)
			}
		}
		if readErr == io.EOF {
			return events, nil
		}
		if readErr != nil {
			return nil, fmt.Errorf("read interaction log: %w", readErr)
		}
	}
}

func (r *FileRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}

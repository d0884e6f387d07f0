package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestFileRecorder_AppendAndLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "logs", "interactions.jsonl")
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}

	ev1 := Event{Timestamp: time.Unix(1, 0).UTC(), Username: "alice", Prompt: "hi", Response: "That's fascinating!"}
	ev2 := Event{Timestamp: time.Unix(2, 0).UTC(), Username: "bob", Prompt: "foo", Response: "Can you tell me more?"}
	if err := rec.AppendInteraction(ev1); err != nil {
		t.Fatalf("append1: %v", err)
	}
	if err := rec.AppendInteraction(ev2); err != nil {
		t.Fatalf("append2: %v", err)
	}

	events, err := rec.LoadInteractions()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("want 2, got %d", len(events))
	}
	if events[0].Username != "alice" || events[1].Username != "bob" {
		t.Fatalf("order mismatch: %+v", events)
	}
	if !events[0].Timestamp.Equal(ev1.Timestamp) {
		t.Fatalf("timestamp mismatch: %v", events[0].Timestamp)
	}

	st, err := os.Stat(p)
	if err != nil || st.Size() == 0 {
		t.Fatalf("file not written")
	}
}

func TestFileRecorder_SkipsMalformedLines(t *testing.T) {
	p := filepath.Join(t.TempDir(), "interactions.jsonl")
	data := "{\"username\":\"alice\",\"prompt\":\"a\"}\nnot json\n\n{\"username\":\"bob\",\"prompt\":\"b\"}\n"
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	events, err := rec.LoadInteractions()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 2 || events[1].Prompt != "b" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestFileRecorder_ConcurrentAppends(t *testing.T) {
	rec, err := NewFileRecorder(filepath.Join(t.TempDir(), "interactions.jsonl"))
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = rec.AppendInteraction(Event{Username: "alice", Prompt: "p"})
		}()
	}
	wg.Wait()
	events, _ := rec.LoadInteractions()
	if len(events) != 20 {
		t.Fatalf("want 20 events, got %d", len(events))
	}
}

func TestFileRecorder_KeepsExistingAndLongLines(t *testing.T) {
	p := filepath.Join(t.TempDir(), "interactions.jsonl")
	// last line has no trailing newline
	if err := os.WriteFile(p, []byte(`{"username":"alice","prompt":"old"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	defer rec.Close()

	long := strings.Repeat("x", 2*1024*1024)
	if err := rec.AppendInteraction(Event{Username: "bob", Prompt: long}); err != nil {
		t.Fatalf("append: %v", err)
	}
	events, err := rec.LoadInteractions()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("want 2 events, got %d", len(events))
	}
	if events[0].Prompt != "old" || len(events[1].Prompt) != len(long) {
		t.Fatalf("unexpected events: %q, %d bytes", events[0].Prompt, len(events[1].Prompt))
	}
}

func TestFileRecorder_AppendAfterClose(t *testing.T) {
	rec, err := NewFileRecorder(filepath.Join(t.TempDir(), "interactions.jsonl"))
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := rec.AppendInteraction(Event{Username: "alice"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := rec.AppendInteraction(Event{Username: "alice"}); !errors.Is(err, ErrRecorderClosed) {
		t.Fatalf("want ErrRecorderClosed, got %v", err)
	}
	events, err := rec.LoadInteractions()
	if err != nil || len(events) != 1 {
		t.Fatalf("closed recorder should still read: %d events, %v", len(events), err)
	}
}

package responder

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

var DefaultResponses = []string{
	"Interesting... Let's explore that idea.",
	"Let me think about it...",
	"That's a great question!",
	"Here's something to consider.",
	"Can you tell me more?",
	"I'm not sure, but let's find out together.",
	"Why did the Python programmer wear glasses? Because he couldn't C!",
	"That's fascinating!",
	"Let me get back to you on that.",
	"I appreciate your curiosity!",
}

var ErrNoResponses = errors.New("responder needs at least one response")

// Responder answers every prompt with a uniformly random canned response.
type Responder struct {
	responses []string
	pick      func(n int) int
}

func New(responses []string) (*Responder, error) {
	if len(responses) == 0 {
		return nil, ErrNoResponses
	}
	return &Responder{
		responses: append([]string(nil), responses...),
		pick:      rand.Intn,
	}, nil
}

// Respond ignores the prompt text.
func (r *Responder) Respond(_ string) string {
	return r.responses[r.pick(len(r.responses))]
}

// Candidates returns a copy of the configured responses.
func (r *Responder) Candidates() []string {
	return append([]string(nil), r.responses...)
}

// LoadFile reads a YAML sequence of response strings.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read responses: %w", err)
	}
	var responses []string
	if err := yaml.Unmarshal(data, &responses); err != nil {
		return nil, fmt.Errorf("parse responses: %w", err)
	}
	if len(responses) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoResponses)
	}
	return responses, nil
}

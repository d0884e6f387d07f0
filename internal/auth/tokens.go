package auth

import (
	"sync"

	"github.com/google/uuid"
)

// Registry maps issued bearer tokens to their owners. Tokens never expire and
// live only as long as the process.
type Registry struct {
	mu     sync.RWMutex
	tokens map[string]string
	newID  func() string
}

func NewRegistry() *Registry {
	return &Registry{tokens: make(map[string]string), newID: uuid.NewString}
}

// Issue mints a fresh "<username>-<uuid>" token for username.
func (r *Registry) Issue(username string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		token := username + "-" + r.newID()
		if _, taken := r.tokens[token]; taken {
			continue
		}
		r.tokens[token] = username
		return token
	}
}

func (r *Registry) Resolve(token string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	username, ok := r.tokens[token]
	return username, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}

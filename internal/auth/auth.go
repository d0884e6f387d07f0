package auth

import "crypto/subtle"

// DefaultUsers is the built-in user set used when no credentials file is configured.
var DefaultUsers = map[string]string{
	"alice":  "password123",
	"bob":    "secret",
	"suyash": "Gennovation@123",
}

// Credentials is an immutable username -> password set.
type Credentials struct {
	users map[string]string
}

func NewCredentials(users map[string]string) *Credentials {
	c := &Credentials{users: make(map[string]string, len(users))}
	for name, pass := range users {
		c.users[name] = pass
	}
	return c
}

// Authenticate reports whether username exists and password matches it exactly.
func (c *Credentials) Authenticate(username, password string) bool {
	stored, ok := c.users[username]
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func (c *Credentials) Len() int {
	return len(c.users)
}

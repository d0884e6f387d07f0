package auth

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadCredentialsFile reads a YAML mapping of username to password.
func LoadCredentialsFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var users map[string]string
	if err := yaml.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("credentials file %s has no users", path)
	}
	for name := range users {
		if name == "" {
			return nil, fmt.Errorf("credentials file %s contains an empty username", path)
		}
	}
	return users, nil
}

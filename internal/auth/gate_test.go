package auth

import (
	"errors"
	"testing"
)

func TestAuthorize(t *testing.T) {
	r := NewRegistry()
	tok := r.Issue("alice")

	cases := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid", "Bearer " + tok, "alice", nil},
		{"missing", "", "", ErrMissingToken},
		{"no prefix", tok, "", ErrMalformedToken},
		{"lowercase scheme", "bearer " + tok, "", ErrMalformedToken},
		{"basic scheme", "Basic YWxpY2U6cGFzc3dvcmQxMjM=", "", ErrMalformedToken},
		{"empty token", "Bearer ", "", ErrMalformedToken},
		{"unknown token", "Bearer alice-00000000-0000-0000-0000-000000000000", "", ErrInvalidToken},
		{"extra field", "Bearer " + tok + " extra", "", ErrInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Authorize(r, tc.header)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("user = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAuthorizeTokenFromOtherRegistry(t *testing.T) {
	// a token from a previous process incarnation is unknown to a fresh registry
	old := NewRegistry().Issue("bob")
	if _, err := Authorize(NewRegistry(), "Bearer "+old); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

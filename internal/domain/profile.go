package domain

import (
	"fmt"
	"slices"
	"strings"
)

// ConnectionProfile is a named, persisted set of broker connection parameters.
// Name is the primary key. A stored profile always has a name and at least
// one bootstrap server, and either both SASL fields or neither.
type ConnectionProfile struct {
	Name             string   `json:"name"`
	BootstrapServers []string `json:"bootstrap_servers"`
	SASLUsername     string   `json:"sasl_username,omitempty"`
	SASLPassword     string   `json:"sasl_password,omitempty"`
}

// PlainAuth carries SASL/PLAIN credentials.
type PlainAuth struct {
	User string
	Pass string
}

// ParseBootstrapServers splits comma-separated host:port input, trimming
// whitespace and dropping empty entries.
func ParseBootstrapServers(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateCredentials rejects a SASL pair where exactly one side is set.
func ValidateCredentials(username, password string) error {
	if (username == "") != (password == "") {
		return ErrMalformedCredentials
	}
	return nil
}

// NewPlainAuth returns nil when no credentials are set.
func NewPlainAuth(username, password string) *PlainAuth {
	if username == "" && password == "" {
		return nil
	}
	return &PlainAuth{User: username, Pass: password}
}

// Validate checks the invariants every stored profile must satisfy.
func (p ConnectionProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.BootstrapServers) == 0 {
		return ErrEmptyServers
	}
	for _, server := range p.BootstrapServers {
		if strings.TrimSpace(server) == "" {
			return ErrEmptyServers
		}
		if parsed := ParseBootstrapServers(server); len(parsed) != 1 || parsed[0] != server {
			return fmt.Errorf("%w: %q", ErrInvalidServer, server)
		}
	}
	return ValidateCredentials(p.SASLUsername, p.SASLPassword)
}

// Auth returns the profile credentials, or nil for unauthenticated profiles.
func (p ConnectionProfile) Auth() *PlainAuth {
	return NewPlainAuth(p.SASLUsername, p.SASLPassword)
}

// AuthType returns a human-readable authentication type.
func (p ConnectionProfile) AuthType() string {
	if p.Auth() != nil {
		return "SASL/PLAIN"
	}
	return "PLAINTEXT"
}

// Clone returns a deep copy so callers never share the servers slice.
func (p ConnectionProfile) Clone() ConnectionProfile {
	p.BootstrapServers = slices.Clone(p.BootstrapServers)
	return p
}

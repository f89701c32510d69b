package domain_test

import (
	"testing"

	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestParseBootstrapServers(t *testing.T) {
	t.Parallel()
	require.Equal(t, []string{"a:9092", "b:9092"}, domain.ParseBootstrapServers(" a:9092, ,b:9092,"))
	require.Empty(t, domain.ParseBootstrapServers(""))
	require.Empty(t, domain.ParseBootstrapServers(" , "))
}

func TestConnectionProfile_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		profile domain.ConnectionProfile
		want    error
	}{
		{"valid plaintext", domain.ConnectionProfile{Name: "local", BootstrapServers: []string{"127.0.0.1:9092"}}, nil},
		{"valid sasl", domain.ConnectionProfile{Name: "prod", BootstrapServers: []string{"k:9092"}, SASLUsername: "u", SASLPassword: "p"}, nil},
		{"empty name", domain.ConnectionProfile{Name: "  ", BootstrapServers: []string{"k:9092"}}, domain.ErrEmptyName},
		{"no servers", domain.ConnectionProfile{Name: "x"}, domain.ErrEmptyServers},
		{"blank server", domain.ConnectionProfile{Name: "x", BootstrapServers: []string{" "}}, domain.ErrEmptyServers},
		{"one blank among servers", domain.ConnectionProfile{Name: "x", BootstrapServers: []string{"k:9092", ""}}, domain.ErrEmptyServers},
		{"comma inside server", domain.ConnectionProfile{Name: "x", BootstrapServers: []string{"a:1,b:2"}}, domain.ErrInvalidServer},
		{"padded server", domain.ConnectionProfile{Name: "x", BootstrapServers: []string{" k:9092"}}, domain.ErrInvalidServer},
		{"user only", domain.ConnectionProfile{Name: "x", BootstrapServers: []string{"k:9092"}, SASLUsername: "u"}, domain.ErrMalformedCredentials},
		{"password only", domain.ConnectionProfile{Name: "x", BootstrapServers: []string{"k:9092"}, SASLPassword: "p"}, domain.ErrMalformedCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestConnectionProfile_AuthAndClone(t *testing.T) {
	t.Parallel()
	p := domain.ConnectionProfile{Name: "x", BootstrapServers: []string{"k:9092"}}
	require.Nil(t, p.Auth())
	require.Equal(t, "PLAINTEXT", p.AuthType())

	p.SASLUsername, p.SASLPassword = "u", "p"
	require.Equal(t, &domain.PlainAuth{User: "u", Pass: "p"}, p.Auth())
	require.Equal(t, "SASL/PLAIN", p.AuthType())

	c := p.Clone()
	c.BootstrapServers[0] = "changed:9092"
	require.Equal(t, "k:9092", p.BootstrapServers[0])
}

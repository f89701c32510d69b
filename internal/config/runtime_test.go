package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadRuntime_Defaults(t *testing.T) {
	t.Parallel()
	v := newViper()
	v.Set("state", "/tmp/kafkalens-test/state.yml")

	rt, err := LoadRuntime(v)
	require.NoError(t, err)
	require.Equal(t, ":8080", rt.HTTPAddr)
	require.Equal(t, 10*time.Second, rt.ConnectTimeout)
	require.Equal(t, 1, rt.ConnectRetries)
	require.Equal(t, ClientFranz, rt.Client)
	require.Equal(t, "/tmp/kafkalens-test/state.yml", rt.StatePath)
}

func TestLoadRuntime_Overrides(t *testing.T) {
	t.Parallel()
	v := newViper()
	v.Set("http_addr", "127.0.0.1:9000")
	v.Set("connect_timeout", "3s")
	v.Set("connect_retries", 0)
	v.Set("client", ClientSarama)
	v.Set("state", "x.yml")

	rt, err := LoadRuntime(v)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", rt.HTTPAddr)
	require.Equal(t, 3*time.Second, rt.ConnectTimeout)
	require.Zero(t, rt.ConnectRetries)
	require.Equal(t, ClientSarama, rt.Client)
}

func TestLoadRuntime_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		key string
		val any
	}{
		{"connect_timeout", "0s"},
		{"connect_retries", -1},
		{"client", "librdkafka"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			v := newViper()
			v.Set("state", "x.yml")
			v.Set(tt.key, tt.val)
			_, err := LoadRuntime(v)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadRuntime_DiscoversStatePath(t *testing.T) {
	t.Parallel()
	rt, err := LoadRuntime(newViper())
	require.NoError(t, err)
	require.NotEmpty(t, rt.StatePath)
	require.True(t, strings.HasSuffix(filepath.Base(rt.StatePath), ".yml") || strings.HasSuffix(rt.StatePath, ".yaml"))
}

func TestStateCandidates_IncludeWorkingDir(t *testing.T) {
	t.Parallel()
	c := stateCandidates()
	require.Contains(t, c, "state.yml")
	require.Contains(t, c, "state.yaml")
}

package config_test

import (
	"errors"
	"testing"

	"github.com/OliveiraNt/kafkalens/internal/config"
	"github.com/OliveiraNt/kafkalens/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestLoadAppSettings_InitialisesDefaults(t *testing.T) {
	t.Parallel()
	kv := testutil.NewMemoryStore()

	s, err := config.LoadAppSettings(kv)
	require.NoError(t, err)
	require.Equal(t, config.DefaultAppSettings(), s)
	require.Equal(t, 1, kv.Writes())
	require.Contains(t, kv.Raw("config"), "default_width: 1200")
}

func TestLoadAppSettings_KeepsStoredValues(t *testing.T) {
	t.Parallel()
	kv := testutil.NewMemoryStore()
	kv.SetRaw("config", "language: pt-BR\ndefault_width: 800\ndefault_height: 600\n")

	s, err := config.LoadAppSettings(kv)
	require.NoError(t, err)
	require.Equal(t, config.AppSettings{Language: "pt-BR", DefaultWidth: 800, DefaultHeight: 600}, s)
	require.Zero(t, kv.Writes())
}

func TestLoadAppSettings_FillsMissingFields(t *testing.T) {
	t.Parallel()
	kv := testutil.NewMemoryStore()
	kv.SetRaw("config", "language: en\n")

	s, err := config.LoadAppSettings(kv)
	require.NoError(t, err)
	require.Equal(t, 1200, s.DefaultWidth)
	require.Equal(t, 800, s.DefaultHeight)
	require.Equal(t, 1, kv.Writes())
}

func TestLoadAppSettings_StoreError(t *testing.T) {
	t.Parallel()
	kv := testutil.NewMemoryStore()
	kv.GetErr = errors.New("boom")

	s, err := config.LoadAppSettings(kv)
	require.Error(t, err)
	require.Equal(t, config.DefaultAppSettings(), s)
}

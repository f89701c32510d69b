// Package config holds launch configuration, persisted UI settings and the
// message catalog bootstrap.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "KAFKALENS"

	ClientFranz  = "franz"
	ClientSarama = "sarama"

	appDir = "kafkalens"
)

// Runtime is the launch configuration: flags, KAFKALENS_* env and .env.
type Runtime struct {
	HTTPAddr       string        `mapstructure:"http_addr"`
	StatePath      string        `mapstructure:"state"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	ConnectRetries int           `mapstructure:"connect_retries"`
	Client         string        `mapstructure:"client"`
	LogLevel       string        `mapstructure:"log_level"`
}

// SetDefaults registers every Runtime key so AutomaticEnv can resolve it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("state", "")
	v.SetDefault("connect_timeout", 10*time.Second)
	v.SetDefault("connect_retries", 1)
	v.SetDefault("client", ClientFranz)
	v.SetDefault("log_level", "info")
}

// LoadRuntime decodes and validates the launch configuration. An empty state
// path is resolved with FindStatePath.
func LoadRuntime(v *viper.Viper) (Runtime, error) {
	var rt Runtime
	if err := v.Unmarshal(&rt); err != nil {
		return rt, fmt.Errorf("unable to decode config: %w", err)
	}
	if rt.ConnectTimeout <= 0 {
		return rt, fmt.Errorf("connect_timeout must be positive, got %s", rt.ConnectTimeout)
	}
	if rt.ConnectRetries < 0 {
		return rt, fmt.Errorf("connect_retries must not be negative, got %d", rt.ConnectRetries)
	}
	switch rt.Client {
	case ClientFranz, ClientSarama:
	default:
		return rt, fmt.Errorf("unknown client %q (want %s or %s)", rt.Client, ClientFranz, ClientSarama)
	}
	if rt.StatePath == "" {
		rt.StatePath = FindStatePath()
	}
	return rt, nil
}

// FindStatePath returns the first existing state file among the usual
// locations, or the per-user default when none exists yet.
func FindStatePath() string {
	candidates := stateCandidates()
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return defaultStatePath()
}

func stateCandidates() []string {
	names := []string{"state.yml", "state.yaml"}
	var dirs []string

	dirs = append(dirs, ".")
	home, _ := os.UserHomeDir()
	if runtime.GOOS == "windows" {
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			dirs = append(dirs, filepath.Join(appdata, appDir))
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, appDir))
		}
	} else {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			dirs = append(dirs, filepath.Join(xdg, appDir))
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".config", appDir), filepath.Join(home, "."+appDir))
		}
	}

	var out []string
	for _, d := range dirs {
		for _, n := range names {
			out = append(out, filepath.Join(d, n))
		}
	}
	return out
}

func defaultStatePath() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, appDir, "state.yml")
	}
	return "state.yml"
}

package config

import (
	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/OliveiraNt/kafkalens/internal/utils"
)

const settingsKey = "config"

// AppSettings is the persisted UI configuration stored under the "config" key.
type AppSettings struct {
	Language      string `yaml:"language" json:"language"`
	DefaultWidth  int    `yaml:"default_width" json:"default_width"`
	DefaultHeight int    `yaml:"default_height" json:"default_height"`
}

func DefaultAppSettings() AppSettings {
	return AppSettings{Language: "en", DefaultWidth: 1200, DefaultHeight: 800}
}

// LoadAppSettings reads the persisted settings, filling missing fields with
// defaults and writing the record back when anything was filled in.
func LoadAppSettings(kv domain.KVStore) (AppSettings, error) {
	var s AppSettings
	found, err := kv.Get(settingsKey, &s)
	if err != nil {
		return DefaultAppSettings(), err
	}

	def := DefaultAppSettings()
	filled := !found
	if s.Language == "" {
		s.Language, filled = def.Language, true
	}
	if s.DefaultWidth <= 0 {
		s.DefaultWidth, filled = def.DefaultWidth, true
	}
	if s.DefaultHeight <= 0 {
		s.DefaultHeight, filled = def.DefaultHeight, true
	}

	if filled {
		utils.Logger.Debug("initialising persisted settings", "language", s.Language)
		if err := kv.Set(settingsKey, s); err != nil {
			return s, err
		}
	}
	return s, nil
}

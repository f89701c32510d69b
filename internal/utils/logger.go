// Package utils holds process-wide helpers shared by every layer, most
// notably the structured logger.
package utils

import (
	"os"
	"strings"
	"sync"

	chlog "github.com/charmbracelet/log"
)

// Logger is the application-wide structured logger. It is usable before
// InitLogger runs, at info level.
var Logger = newLogger(chlog.InfoLevel)

// levelEnv selects the log level at startup.
const levelEnv = "KAFKALENS_LOG_LEVEL"

const (
	debugLevel = "debug"
	infoLevel  = "info"
	warnLevel  = "warn"
	errorLevel = "error"
)

var initOnce sync.Once

// InitLogger applies the level from KAFKALENS_LOG_LEVEL to the global logger
// once. Valid levels: debug, info, warn, error.
func InitLogger() {
	initOnce.Do(func() {
		if Logger == nil {
			Logger = newLogger(chlog.InfoLevel)
		}
		Logger.SetLevel(parseLevel(os.Getenv(levelEnv), chlog.InfoLevel))
	})
}

func newLogger(level chlog.Level) *chlog.Logger {
	l := chlog.New(os.Stdout)
	l.SetTimeFormat("2006-01-02 15:04:05.000")
	l.SetReportTimestamp(true)
	l.SetLevel(level)
	return l
}

// SetLogLevel allows changing level at runtime. Unknown levels are ignored.
func SetLogLevel(level string) {
	if Logger == nil {
		Logger = newLogger(chlog.InfoLevel)
	}
	Logger.SetLevel(parseLevel(level, Logger.GetLevel()))
}

func parseLevel(s string, fallback chlog.Level) chlog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case debugLevel:
		return chlog.DebugLevel
	case infoLevel:
		return chlog.InfoLevel
	case warnLevel:
		return chlog.WarnLevel
	case errorLevel:
		return chlog.ErrorLevel
	default:
		return fallback
	}
}

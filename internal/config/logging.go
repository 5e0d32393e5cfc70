package config

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docnav/internal/foundation/normalization"
)

// LogLevelEnv overrides the configured log level.
const LogLevelEnv = "DOCNAV_LOG_LEVEL"

// LogLevel is a configured logging level.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevels = normalization.NewNormalizer("log level", map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

// NormalizeLogLevel maps raw to a LogLevel, defaulting to info.
func NormalizeLogLevel(raw string) LogLevel {
	return logLevels.Normalize(raw)
}

// Slog returns the matching slog level.
func (l LogLevel) Slog() slog.Level {
	switch NormalizeLogLevel(string(l)) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogLevelFromEnv returns the level named by DOCNAV_LOG_LEVEL and whether it is set.
func LogLevelFromEnv() (slog.Level, bool) {
	raw, ok := os.LookupEnv(LogLevelEnv)
	if !ok || raw == "" {
		return slog.LevelInfo, false
	}
	return NormalizeLogLevel(raw).Slog(), true
}

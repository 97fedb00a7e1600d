package util

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/xoinv/hostcriteria/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger configures the default slog logger from cfg. The LOG_LEVEL
// environment variable, when set, overrides cfg.MinLevel (for quick
// debugging without touching the config file). When file logging is
// enabled, log records fan out to stderr and to cfg.FilePath, which is a
// rotating lumberjack sink when rotation is enabled and a plain append-only
// file otherwise.
func InitLogger(cfg config.LoggingConfig) {
	level := parseLevel(cfg.MinLevel)
	if envLevel, ok := os.LookupEnv("LOG_LEVEL"); ok {
		level = parseLevel(envLevel)
	}

	opts := &slog.HandlerOptions{Level: level}

	var writer io.Writer = os.Stderr
	if cfg.EnableFileLogging && cfg.FilePath != "" {
		if cfg.EnableRotation {
			writer = io.MultiWriter(os.Stderr, &lumberjack.Logger{
				Filename:   cfg.FilePath,
				MaxSize:    maxOrDefault(cfg.FileMaxSizeMB, 10),
				MaxBackups: cfg.FileBackupCount,
			})
		} else if f, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			writer = io.MultiWriter(os.Stderr, f)
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(writer, opts)))
}

func maxOrDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

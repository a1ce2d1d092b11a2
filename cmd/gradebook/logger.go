package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/MiracleAriel/seminar12-gb-hw/config"
)

// setupLogger настраивает структурированное логирование.
// Логи пишутся в w (stderr), чтобы не смешиваться с отчётом в stdout.
func setupLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Observability.LogLevel),
	}

	if cfg.IsProduction() || strings.EqualFold(cfg.Observability.LogFormat, "json") {
		// JSON формат для production (лучше для агрегаторов логов)
		handler = slog.NewJSONHandler(w, opts)
	} else {
		// Текстовый формат для development (лучше читается)
		handler = slog.NewTextHandler(w, opts)
	}

	log := slog.New(handler).With("app", cfg.App.Name)
	slog.SetDefault(log)

	return log
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

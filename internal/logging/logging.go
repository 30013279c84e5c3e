// Package logging builds tada's *slog.Logger.
//
// Records go through a masq redaction layer and are written by a
// charmbracelet/log handler:
//
//	logger := logging.New("warn", "text", os.Stderr)
//
// Error logging convention:
//
//	logger.Warn("state change not persisted",
//	    slog.String("operation", "Add"),
//	    slog.String("todo_id", id),
//	    slog.Any("error", err),
//	)
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

type contextKey struct{}

// New creates a configured *slog.Logger.
//
// level is one of debug, info, warn or error; anything else means info.
// format is text, json or logfmt; anything else means text. Debug level
// also reports the caller.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := parseLevel(level)
	handler := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       parseFormatter(format),
		ReportTimestamp: true,
		ReportCaller:    lvl == log.DebugLevel,
		Prefix:          "tada",
	})
	return slog.New(newRedactHandler(handler))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return New("error", "text", io.Discard)
}

// WithLogger returns a new context with the given logger stored in it.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts a *slog.Logger from the context, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func parseFormatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

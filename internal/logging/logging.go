package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/lmittmann/tint"
)

type Options struct {
	Level string
	// Format is "json" (default) or "text" for colored console output.
	Format     string
	File       string
	FluentHost string
	FluentPort int
}

// New creates a *slog.Logger writing to stderr and optionally to a file and a
// Fluent Bit collector. The file and collector always receive JSON records.
// It also sets the logger as the slog default so package-level slog calls
// work. The returned cleanup func flushes and closes the sinks; callers must
// defer it.
func New(opts Options) (*slog.Logger, func(), error) {
	lvl := parseLevel(opts.Level)

	var console slog.Handler
	if opts.Format == "text" {
		console = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      lvl,
			TimeFormat: time.DateTime,
			NoColor:    os.Getenv("NO_COLOR") != "",
		})
	} else {
		console = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	}

	handlers := []slog.Handler{console}
	var closers []func()
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	var sinks []io.Writer
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		sinks = append(sinks, f)
		closers = append(closers, func() { _ = f.Close() })
	}

	if opts.FluentHost != "" {
		client, err := fluent.New(fluent.Config{
			FluentHost: opts.FluentHost,
			FluentPort: opts.FluentPort,
			TagPrefix:  "homelist",
			Async:      true,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to create fluent client: %w", err)
		}
		sinks = append(sinks, NewFluentWriter(client))
		closers = append(closers, func() { _ = client.Close() })
	}

	if len(sinks) > 0 {
		handlers = append(handlers, slog.NewJSONHandler(io.MultiWriter(sinks...), &slog.HandlerOptions{Level: lvl}))
	}

	var handler slog.Handler = console
	if len(handlers) > 1 {
		handler = fanout(handlers)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, cleanup, nil
}

func parseLevel(s string) slog.Level {
	switch s {
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

// Package logging provides logging utilities for the application
package logging

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

var (
	mu      sync.Mutex
	handler slog.Handler
)

// rootHandler lazily creates the shared handler for all named loggers.
// When stderr is a terminal, log lines are colorized via tint; otherwise
// plain text output is used so logs stay grep-able in files and pipes.
func rootHandler() slog.Handler {
	mu.Lock()
	defer mu.Unlock()

	if handler != nil {
		return handler
	}

	level := slog.LevelInfo
	if os.Getenv("DDICT_DEBUG") != "" {
		level = slog.LevelDebug
	}

	if isatty.IsTerminal(os.Stderr.Fd()) {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	}
	return handler
}

// GetLogger returns a named logger for a package.
// All loggers share one handler, the name shows up as the "pkg" attribute.
func GetLogger(pkgName string) *slog.Logger {
	return slog.New(rootHandler()).With("pkg", pkgName)
}

// SPDX-License-Identifier: EPL-2.0

// Package logger writes structured logs and reports engine faults to Sentry.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/getsentry/sentry-go"

	"github.com/ik5/blockrender/block"
)

// Fields represents structured log fields
type Fields map[string]any

var (
	mtx  sync.RWMutex
	base = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// Init sends logs to w at level and above.
func Init(w io.Writer, level slog.Level) {
	mtx.Lock()
	defer mtx.Unlock()

	base = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Slog returns the underlying logger, for code that takes a *slog.Logger.
func Slog() *slog.Logger {
	mtx.RLock()
	defer mtx.RUnlock()

	return base
}

// Info logs an informational message with structured fields
func Info(msg string, fields Fields) {
	Slog().Info(msg, attrs(fields)...)
	breadcrumb(sentry.LevelInfo, "info", msg, fields)
}

// Warn logs a warning message with structured fields
func Warn(msg string, fields Fields) {
	Slog().Warn(msg, attrs(fields)...)
	breadcrumb(sentry.LevelWarning, "warning", msg, fields)
}

// Debug logs a debug message with structured fields
func Debug(msg string, fields Fields) {
	Slog().Debug(msg, attrs(fields)...)
	breadcrumb(sentry.LevelDebug, "debug", msg, fields)
}

// Error logs err and sends it to Sentry. Engine faults are tagged
// fault=internal_consistency, contract violations fault=contract.
func Error(msg string, err error, fields Fields) {
	Slog().Error(msg, append(attrs(fields), "error", err)...)

	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		for key, value := range fields {
			scope.SetContext(key, map[string]any{
				"value": value,
			})
		}

		switch {
		case block.IsFault(err):
			scope.SetTag("fault", "internal_consistency")
		case errors.Is(err, block.ErrContractViolation):
			scope.SetTag("fault", "contract")
		}
		if track, ok := fields["track"].(string); ok {
			scope.SetTag("track", track)
		}
		if runID, ok := fields["run_id"].(string); ok {
			scope.SetTag("run_id", runID)
		}

		scope.SetContext("log", map[string]any{"message": msg})
		hub.CaptureException(err)
	})
}

func breadcrumb(level sentry.Level, kind, msg string, fields Fields) {
	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.AddBreadcrumb(&sentry.Breadcrumb{
			Type:     kind,
			Category: "log",
			Message:  msg,
			Data:     maps.Clone(fields),
			Level:    level,
		}, nil)
	}
}

// attrs flattens fields into slog key/value pairs, sorted by key.
func attrs(fields Fields) []any {
	keys := slices.Sorted(maps.Keys(fields))

	res := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		res = append(res, k, fields[k])
	}
	return res
}

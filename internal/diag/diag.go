// Package diag centralizes textdex's diagnostic output, the way the
// teacher's internal/debug package centralizes its debug logging: a
// small set of named helpers instead of scattered log calls, with a
// single switch to silence output (e.g. when embedding the engine).
package diag

import (
	"fmt"
	"log/slog"
	"os"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// Quiet suppresses all diagnostic output when true. The REPL leaves this
// false so operators see the same messages spec.md §7 requires; batch
// callers embedding the engine may set it.
var Quiet = false

// SetLogger overrides the destination logger, primarily for tests that
// want to capture output.
func SetLogger(l *slog.Logger) {
	logger = l
}

// Index logs a diagnostic from the index store/mutator.
func Index(msg string, args ...any) {
	emit("index", msg, args...)
}

// Query logs a diagnostic from the query engine.
func Query(msg string, args ...any) {
	emit("query", msg, args...)
}

// Watch logs a diagnostic from the filesystem watcher.
func Watch(msg string, args ...any) {
	emit("watch", msg, args...)
}

func emit(component, msg string, args ...any) {
	if Quiet {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	logger.Warn(msg, "component", component)
}

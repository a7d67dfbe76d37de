package centermap

import (
	"log/slog"
	"os"

	"github.com/hupe1980/centermap/model"
)

// Logger wraps slog.Logger with centermap-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// WithSpecies adds a species field to the logger.
func (l *Logger) WithSpecies(sp model.Species) *Logger {
	return &Logger{
		Logger: l.Logger.With("species", sp.String()),
	}
}

// LogBuild logs a layout construction.
func (l *Logger) LogBuild(structures, atoms, species int, partitioned bool, err error) {
	if err != nil {
		l.Error("layout build failed",
			"structures", structures,
			"partitioned", partitioned,
			"error", err,
		)
		return
	}
	l.Debug("layout built",
		"structures", structures,
		"atoms", atoms,
		"species", species,
		"partitioned", partitioned,
	)
}

// LogTranslate logs a selection translation.
func (l *Logger) LogTranslate(selected, translated int, err error) {
	if err != nil {
		l.Error("selection translation failed",
			"selected", selected,
			"error", err,
		)
		return
	}
	l.Debug("selection translated",
		"selected", selected,
		"translated", translated,
	)
}

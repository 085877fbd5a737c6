package arena

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with arena-specific helpers.
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
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// It is the default for arenas created without WithLogger.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithArena tags every record with the arena's capacity and backing.
func (l *Logger) WithArena(capacity int, backing Backing) *Logger {
	return &Logger{
		Logger: l.Logger.With("arena_capacity", capacity, "backing", backing.String()),
	}
}

func (l *Logger) logBlock(msg string, b Block) {
	l.Debug(msg,
		"start", b.Start,
		"size", b.Size,
		"state", b.State.String(),
	)
}

func (l *Logger) logRelocate(from, to Offset, oldSize, newSize uint32) {
	l.Debug("block relocated",
		"from", from,
		"to", to,
		"old_size", oldSize,
		"new_size", newSize,
	)
}

func (l *Logger) logConsolidate(merges, passes, blocks int) {
	if merges == 0 {
		return
	}
	l.Debug("blocks consolidated",
		"merges", merges,
		"passes", passes,
		"blocks", blocks,
	)
}

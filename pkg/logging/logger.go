// Package logging provides structured logging for the starfighter simulation and
// its clients. It wraps Go's slog package with context-aware helpers that tag
// every entry with the run ID of the play session that produced it.
package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnv is the environment variable that selects the log level
const LevelEnv = "GSF_LOG_LEVEL"

// Logger wraps slog.Logger with context-aware convenience methods
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger writing JSON to stdout.
// The level is read from GSF_LOG_LEVEL: DEBUG, INFO, WARN or ERROR. Defaults to INFO.
func NewLogger() *Logger {
	return NewLoggerWithWriter(os.Stdout, LevelFromEnv())
}

// NewLoggerWithWriter creates a JSON Logger on w at a fixed level.
// Terminal clients use it to keep log output off the screen they draw on.
func NewLoggerWithWriter(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{slog.New(handler)}
}

// NewNopLogger returns a Logger that discards everything
func NewNopLogger() *Logger {
	return NewLoggerWithWriter(io.Discard, slog.LevelError+1)
}

// LogWithContext logs a message, adding the run ID from ctx when present
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if runID := GetRunID(ctx); runID != "" {
		args = append(args, "run_id", runID)
	}
	l.Log(ctx, level, msg, args...)
}

// Info logs an informational message with context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning message with context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

// Error logs an error message with context; a nil err is omitted.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

// Debug logs a debug message with context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

type runIDKey struct{}

// WithRunID tags ctx with a play-session ID, generating one when runID is empty
func WithRunID(ctx context.Context, runID string) context.Context {
	if runID == "" {
		runID = GenerateRunID()
	}
	return context.WithValue(ctx, runIDKey{}, runID)
}

// GetRunID extracts the run ID from ctx, or "" when none is set
func GetRunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateRunID creates a random 16 hex digit run ID
func GenerateRunID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// LevelFromEnv reads the log level from GSF_LOG_LEVEL
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LevelEnv))
}

// ParseLevel maps a level name to a slog level, defaulting to INFO
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WrapError wraps an error with additional context information.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}

package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Logger wraps slog with the call-site chaining used across the codebase:
//
//	log := logger.New("guestRepository").Function("Create")
//	return log.Err("failed to create guest", err, "guestID", id)
type Logger struct {
	l *slog.Logger
}

func init() {
	Setup(levelFromEnv())
}

// Setup replaces the default handler. Called once more from main after the
// config is loaded, so LOG_LEVEL from config wins over the env default.
func Setup(level slog.Level) {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func levelFromEnv() slog.Level {
	return ParseLevel(os.Getenv("LOG_LEVEL"))
}

func New(pkg string) Logger {
	return Logger{l: slog.Default().With("package", pkg)}
}

func (l Logger) Function(name string) Logger {
	return Logger{l: l.l.With("function", name)}
}

func (l Logger) File(name string) Logger {
	return Logger{l: l.l.With("file", name)}
}

func (l Logger) With(args ...any) Logger {
	return Logger{l: l.l.With(args...)}
}

func (l Logger) Debug(msg string, args ...any) {
	l.l.Debug(msg, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.l.Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.l.Warn(msg, args...)
}

// Err logs the error with context and returns it wrapped so callers can
// `return log.Err(...)` in one line.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.l.Error(msg, append(args, "error", err)...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs and returns a new error built from the message alone.
func (l Logger) Error(msg string, args ...any) error {
	l.l.Error(msg, args...)
	return fmt.Errorf("%s", msg)
}

func (l Logger) ErrMsg(msg string) error {
	l.l.Error(msg)
	return fmt.Errorf("%s", msg)
}

// Er logs an error without returning one, for paths that swallow the failure.
func (l Logger) Er(msg string, err error, args ...any) {
	l.l.Error(msg, append(args, "error", err)...)
}

func (l Logger) ErMsg(msg string) {
	l.l.Error(msg)
}

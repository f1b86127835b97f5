// Package log provides structured logging for wallflower.
// It wraps slog with sensible defaults for production use.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.Mutex
	logger *slog.Logger
	file   *lumberjack.Logger
)

// Options controls logger construction.
type Options struct {
	Level string `mapstructure:"level" json:"level"` // debug, info, warn, error
	File  string `mapstructure:"file" json:"file"`   // Rotating log file, empty for none

	// Rotation, see lumberjack.Logger
	MaxSizeMB  int `mapstructure:"max_size_mb" json:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups" json:"max_backups"`
	MaxAgeDays int `mapstructure:"max_age_days" json:"max_age_days"`

	// Quiet drops stdout output; the terminal renderer owns the screen.
	Quiet bool `mapstructure:"-" json:"-"`
}

// ParseLevel maps a level name to a slog level. Unknown names are info.
func ParseLevel(level string) slog.Level {
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

// New builds a logger writing to w.
// Use JSON in production, text in development.
func New(w io.Writer, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if os.Getenv("GO_ENV") == "production" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup replaces the global logger. A previous log file is closed.
func Setup(o Options) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		_ = file.Close()
		file = nil
	}

	var writers []io.Writer
	if !o.Quiet {
		writers = append(writers, os.Stdout)
	}
	if o.File != "" {
		file = &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    orDefault(o.MaxSizeMB, 10),
			MaxBackups: orDefault(o.MaxBackups, 3),
			MaxAge:     orDefault(o.MaxAgeDays, 7),
		}
		writers = append(writers, file)
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	logger = New(w, o.Level)
	slog.SetDefault(logger)
	return logger
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// L returns the global logger instance.
func L() *slog.Logger {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l == nil {
		return Setup(Options{Level: "info"})
	}
	return l
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	L().Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	L().Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	L().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	L().Error(msg, args...)
}

// With returns a logger with the given attributes.
func With(args ...any) *slog.Logger {
	return L().With(args...)
}

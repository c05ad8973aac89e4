package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// StringToLogLevel translates a string representation of a log level to its enum
func StringToLogLevel(level string) (int, error) {
	switch strings.ToUpper(level) {
	case "TRACE":
		return TraceLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "INFO", "":
		return InfoLevel, nil
	case "WARN":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "FATAL":
		return FatalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("Unknown log level %s", level)
	}
}

// toSlogLevel maps a log level enum onto slog's levels. Trace and Fatal have
// no slog counterpart and are placed just outside Debug and Error.
func toSlogLevel(level int) slog.Level {
	switch level {
	case TraceLevel:
		return slog.LevelDebug - 4
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	case FatalLevel:
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}

// Config holds logger configuration
type Config struct {
	Level  int
	Format string    // "json" or "text"
	Output io.Writer // os.Stderr when nil
}

var (
	logger   *slog.Logger
	loggerMu sync.RWMutex
)

// Init (re)initializes the process-wide logger
func Init(config Config) {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: toSlogLevel(config.Level)}
	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = slog.New(handler)
}

// InitDefault initializes the logger at WarnLevel on stderr, unless it has already been initialized
func InitDefault() {
	loggerMu.RLock()
	inited := logger != nil
	loggerMu.RUnlock()
	if !inited {
		Init(Config{Level: WarnLevel})
	}
}

// GetLogger returns the process-wide logger, initializing it with defaults if necessary
func GetLogger() *slog.Logger {
	InitDefault()
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// With returns a logger tagged with a component name
func With(component string) *slog.Logger {
	return GetLogger().With(slog.String("component", component))
}

// Enabled returns true iff the process-wide logger emits records at level. Hot paths check
// it before building a component logger.
func Enabled(level int) bool {
	return GetLogger().Enabled(context.Background(), toSlogLevel(level))
}

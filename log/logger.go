package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// LogLevel represents logging severity
type LogLevel int

const (
	// LogLevelDebug for search internals and per-step plan details
	LogLevelDebug LogLevel = iota
	// LogLevelInfo for plans and run progress
	LogLevelInfo
	// LogLevelWarn for suspicious but accepted configuration
	LogLevelWarn
	// LogLevelError for failed runs
	LogLevelError
	// LogLevelNone disables all logging
	LogLevelNone
)

// Logger is the logging interface used across goalgraph.
// Format strings follow fmt.Printf.
type Logger interface {
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

// DefaultLogger implements Logger on top of the standard log package
type DefaultLogger struct {
	logger *log.Logger
	level  LogLevel
}

var _ Logger = (*DefaultLogger)(nil)

// NewDefaultLogger creates a logger writing to stderr
func NewDefaultLogger(level LogLevel) *DefaultLogger {
	return NewCustomLogger(os.Stderr, level)
}

// NewCustomLogger creates a logger writing to out
func NewCustomLogger(out io.Writer, level LogLevel) *DefaultLogger {
	return &DefaultLogger{
		logger: log.New(out, "[goalgraph] ", log.LstdFlags),
		level:  level,
	}
}

func (l *DefaultLogger) printf(level LogLevel, format string, v ...any) {
	if l.level > level {
		return
	}
	l.logger.Printf("["+level.String()+"] "+format, v...)
}

// Debug logs debug messages
func (l *DefaultLogger) Debug(format string, v ...any) {
	l.printf(LogLevelDebug, format, v...)
}

// Info logs informational messages
func (l *DefaultLogger) Info(format string, v ...any) {
	l.printf(LogLevelInfo, format, v...)
}

// Warn logs warning messages
func (l *DefaultLogger) Warn(format string, v ...any) {
	l.printf(LogLevelWarn, format, v...)
}

// Error logs error messages
func (l *DefaultLogger) Error(format string, v ...any) {
	l.printf(LogLevelError, format, v...)
}

// NoOpLogger discards everything
type NoOpLogger struct{}

func (NoOpLogger) Debug(format string, v ...any) {}
func (NoOpLogger) Info(format string, v ...any)  {}
func (NoOpLogger) Warn(format string, v ...any)  {}
func (NoOpLogger) Error(format string, v ...any) {}

// String returns the string representation of LogLevel
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelNone:
		return "NONE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", l)
	}
}

// ParseLevel converts a level name such as "debug" or "WARN" to a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug, nil
	case "info", "":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	case "none", "off", "disable":
		return LogLevelNone, nil
	}
	return LogLevelInfo, fmt.Errorf("unknown log level %q", s)
}

type loggerHolder struct{ Logger }

var defaultLogger atomic.Value

func init() {
	defaultLogger.Store(loggerHolder{NewDefaultLogger(LogLevelInfo)})
}

// SetDefaultLogger replaces the package-level logger.
// Components that are not given a logger explicitly write to it.
func SetDefaultLogger(logger Logger) {
	if logger == nil {
		logger = NoOpLogger{}
	}
	defaultLogger.Store(loggerHolder{logger})
}

// GetDefaultLogger returns the current package-level logger
func GetDefaultLogger() Logger {
	return defaultLogger.Load().(loggerHolder).Logger
}

// SetLogLevel installs a stderr DefaultLogger with the given level
func SetLogLevel(level LogLevel) {
	SetDefaultLogger(NewDefaultLogger(level))
}

// Debug logs a debug message using the package-level logger
func Debug(format string, v ...any) {
	GetDefaultLogger().Debug(format, v...)
}

// Info logs an informational message using the package-level logger
func Info(format string, v ...any) {
	GetDefaultLogger().Info(format, v...)
}

// Warn logs a warning message using the package-level logger
func Warn(format string, v ...any) {
	GetDefaultLogger().Warn(format, v...)
}

// Error logs an error message using the package-level logger
func Error(format string, v ...any) {
	GetDefaultLogger().Error(format, v...)
}

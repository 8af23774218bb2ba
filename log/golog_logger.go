package log

import (
	"github.com/kataras/golog"
)

// GologLogger adapts a kataras/golog logger to Logger
type GologLogger struct {
	logger *golog.Logger
	level  LogLevel
}

var _ Logger = (*GologLogger)(nil)

// NewGologLogger wraps an existing golog.Logger at info level
func NewGologLogger(logger *golog.Logger) *GologLogger {
	l := &GologLogger{logger: logger}
	l.SetLevel(LogLevelInfo)
	return l
}

func (l *GologLogger) Debug(format string, v ...any) {
	if l.level <= LogLevelDebug {
		l.logger.Debugf(format, v...)
	}
}

func (l *GologLogger) Info(format string, v ...any) {
	if l.level <= LogLevelInfo {
		l.logger.Infof(format, v...)
	}
}

func (l *GologLogger) Warn(format string, v ...any) {
	if l.level <= LogLevelWarn {
		l.logger.Warnf(format, v...)
	}
}

func (l *GologLogger) Error(format string, v ...any) {
	if l.level <= LogLevelError {
		l.logger.Errorf(format, v...)
	}
}

// SetLevel sets the level on both the adapter and the wrapped logger
func (l *GologLogger) SetLevel(level LogLevel) {
	l.level = level

	name := "info"
	switch level {
	case LogLevelDebug:
		name = "debug"
	case LogLevelWarn:
		name = "warn"
	case LogLevelError:
		name = "error"
	case LogLevelNone:
		name = "disable"
	}
	l.logger.SetLevel(name)
}

// GetLevel returns the current log level
func (l *GologLogger) GetLevel() LogLevel {
	return l.level
}

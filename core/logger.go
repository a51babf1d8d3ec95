package core

import (
	"fmt"
	"log"
)

// Logger receives pool lifecycle events (startup, shutdown, scheduler
// activity). The pool never calls it while holding its internal lock, so
// implementations may block briefly; they must be safe for concurrent use.
// Adapting a structured logging backend means implementing these four
// methods over it.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is one key/value attachment on a log line.
type Field struct {
	Key   string
	Value any
}

// F is shorthand for building a Field at the call site.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// DefaultLogger writes through the standard log package, one line per entry
// with fields rendered inline.
type DefaultLogger struct{}

// NewDefaultLogger creates a new DefaultLogger.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{}
}

func (l *DefaultLogger) Debug(msg string, fields ...Field) {
	l.log("DEBUG", msg, fields...)
}

func (l *DefaultLogger) Info(msg string, fields ...Field) {
	l.log("INFO", msg, fields...)
}

func (l *DefaultLogger) Warn(msg string, fields ...Field) {
	l.log("WARN", msg, fields...)
}

func (l *DefaultLogger) Error(msg string, fields ...Field) {
	l.log("ERROR", msg, fields...)
}

func (l *DefaultLogger) log(level, msg string, fields ...Field) {
	line := fmt.Sprintf("[%s] %s", level, msg)
	if len(fields) > 0 {
		line += " {"
		for i, f := range fields {
			if i > 0 {
				line += ", "
			}
			line += fmt.Sprintf("%s: %v", f.Key, f.Value)
		}
		line += "}"
	}
	log.Println(line)
}

// NoOpLogger discards everything. It is the default for pools constructed
// without a logger and keeps tests quiet.
type NoOpLogger struct{}

// NewNoOpLogger creates a new NoOpLogger.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (l *NoOpLogger) Debug(msg string, fields ...Field) {}
func (l *NoOpLogger) Info(msg string, fields ...Field)  {}
func (l *NoOpLogger) Warn(msg string, fields ...Field)  {}
func (l *NoOpLogger) Error(msg string, fields ...Field) {}

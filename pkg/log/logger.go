// Package log is a small structured, leveled logger writing line-delimited
// JSON entries. Entries below the configured level are dropped; writes are
// synchronous.
package log

import (
	"os"
	"sync"
	"time"
)

// Logger emits structured entries at or above its configured level.
type Logger struct {
	level  Level
	sink   Sink
	fields map[string]any
}

// New creates a new logger with the given minimum level and sink.
func New(level Level, sink Sink) *Logger {
	return &Logger{
		level:  level,
		sink:   sink,
		fields: make(map[string]any),
	}
}

// With creates a child logger with additional base fields.
func (l *Logger) With(keysAndValues ...any) *Logger {
	fields := make(map[string]any, len(l.fields)+len(keysAndValues)/2)
	for k, v := range l.fields {
		fields[k] = v
	}
	addPairs(fields, keysAndValues)

	return &Logger{
		level:  l.level,
		sink:   l.sink,
		fields: fields,
	}
}

// log is the internal logging method.
func (l *Logger) log(level Level, msg string, keysAndValues ...any) {
	if !l.level.Enables(level) {
		return
	}

	entry := Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		Fields:    make(map[string]any, len(l.fields)+len(keysAndValues)/2),
	}
	for k, v := range l.fields {
		entry.Fields[k] = v
	}
	addPairs(entry.Fields, keysAndValues)

	_ = l.sink.Write(entry)
}

// addPairs folds alternating key/value arguments into fields.
// Non-string keys and a trailing key without a value are ignored.
func addPairs(fields map[string]any, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
}

// Debug logs at Debug level.
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.log(Debug, msg, keysAndValues...)
}

// Info logs at Info level.
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.log(Info, msg, keysAndValues...)
}

// Warn logs at Warn level.
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.log(Warn, msg, keysAndValues...)
}

// Error logs at Error level.
func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.log(Error, msg, keysAndValues...)
}

// --- Global Logger ---

var (
	globalLogger *Logger
	globalMu     sync.RWMutex
)

// SetDefault sets the global default logger.
func SetDefault(l *Logger) {
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

// Default returns the global logger, creating an Info-level JSON logger on
// stderr the first time it is needed.
func Default() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = New(Info, NewJSONSink(os.Stderr))
	}
	return globalLogger
}

// GlobalDebug logs at Debug level using the global logger.
func GlobalDebug(msg string, keysAndValues ...any) {
	Default().Debug(msg, keysAndValues...)
}

// GlobalInfo logs at Info level using the global logger.
func GlobalInfo(msg string, keysAndValues ...any) {
	Default().Info(msg, keysAndValues...)
}

// GlobalWarn logs at Warn level using the global logger.
func GlobalWarn(msg string, keysAndValues ...any) {
	Default().Warn(msg, keysAndValues...)
}

// GlobalError logs at Error level using the global logger.
func GlobalError(msg string, keysAndValues ...any) {
	Default().Error(msg, keysAndValues...)
}

// Package logging is the leveled, structured logger shared by the planners, the problem reader and
// rrtplan. Entries are zap entries handed to appenders, so any zapcore.Core can consume them.
package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// Logger is the logging interface handed to planners. Planners only log progress; failures are
// returned as errors.
type Logger interface {
	Debugf(template string, args ...interface{})
	// CDebugf and CDebugw also log when ctx carries a debug key, whatever the logger's level.
	CDebugf(ctx context.Context, template string, args ...interface{})
	CDebugw(ctx context.Context, msg string, keysAndValues ...interface{})

	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})

	// With returns a logger adding the given key/value pairs to every entry. It shares this
	// logger's level.
	With(keysAndValues ...interface{}) Logger
	// Sublogger returns a logger named "<name>.<subname>" with a level of its own.
	Sublogger(subname string) Logger
	SetLevel(level Level)
	GetLevel() Level
	// AddAppender adds an output to this logger and every logger derived from the same root.
	AddAppender(appender Appender)
	Sync() error
}

// NewLogger returns a logger at the given level writing UTC timestamps to the given appenders.
func NewLogger(name string, level Level, appenders ...Appender) Logger {
	return newLogger(name, level, true, appenders...)
}

// NewTestLogger returns a logger that writes Debug+ entries through the test's `Log` method.
func NewTestLogger(tb testing.TB) Logger {
	logger, _ := NewObservedTestLogger(tb)
	return logger
}

// NewObservedTestLogger is like NewTestLogger but also records entries for inspection.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	observerCore, observedLogs := observer.New(zap.DebugLevel)
	return newLogger("", DEBUG, false, NewTestAppender(tb), observerCore), observedLogs
}

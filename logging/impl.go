package logging

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// frames between runtime.Caller in callerAt and the code calling a Logger method.
	callerSkip = 3

	missingValue = "<missing>"
	debugKeyName = "debug_key"
)

// sinks is the appender set shared by a root logger and everything derived from it.
type sinks struct {
	mu        sync.RWMutex
	appenders []Appender
}

func (s *sinks) add(appender Appender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appenders = append(s.appenders, appender)
}

func (s *sinks) write(entry zapcore.Entry, fields []zapcore.Field) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, appender := range s.appenders {
		if err := appender.Write(entry, fields); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write log entry: %v\n", err)
		}
	}
}

func (s *sinks) sync() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var errs error
	for _, appender := range s.appenders {
		errs = multierr.Append(errs, appender.Sync())
	}
	return errs
}

type logger struct {
	name   string
	level  AtomicLevel
	utc    bool
	fields []zapcore.Field
	sinks  *sinks
}

func newLogger(name string, level Level, utc bool, appenders ...Appender) *logger {
	return &logger{
		name:  name,
		level: NewAtomicLevelAt(level),
		utc:   utc,
		sinks: &sinks{appenders: appenders},
	}
}

func (l *logger) enabled(level Level, debugKey string) bool {
	return level >= l.level.Get() || (level == DEBUG && debugKey != "")
}

// emit must be called directly from a Logger method for the caller to be reported correctly.
func (l *logger) emit(level Level, debugKey, msg string, keysAndValues []interface{}) {
	entry := zapcore.Entry{
		LoggerName: l.name,
		Level:      level.zap(),
		Message:    msg,
		Time:       time.Now(),
		Caller:     callerAt(callerSkip),
	}
	if l.utc {
		entry.Time = entry.Time.UTC()
	}

	fields := make([]zapcore.Field, 0, len(l.fields)+len(keysAndValues)/2+2)
	fields = append(fields, l.fields...)
	fields = appendPairs(fields, keysAndValues)
	if debugKey != "" {
		fields = append(fields, zap.String(debugKeyName, debugKey))
	}
	l.sinks.write(entry, fields)
}

// appendPairs turns alternating keys and values into fields. A trailing key without a value is
// kept with a placeholder so the mistake shows up in the output.
func appendPairs(fields []zapcore.Field, keysAndValues []interface{}) []zapcore.Field {
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 == len(keysAndValues) {
			fields = append(fields, zap.String(key, missingValue))
			break
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}

func callerAt(skip int) zapcore.EntryCaller {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return zapcore.EntryCaller{}
	}
	caller := zapcore.EntryCaller{Defined: true, PC: pc, File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		caller.Function = fn.Name()
	}
	return caller
}

func (l *logger) Debugf(template string, args ...interface{}) {
	if l.enabled(DEBUG, "") {
		l.emit(DEBUG, "", fmt.Sprintf(template, args...), nil)
	}
}

func (l *logger) CDebugf(ctx context.Context, template string, args ...interface{}) {
	if key := debugKeyOf(ctx); l.enabled(DEBUG, key) {
		l.emit(DEBUG, key, fmt.Sprintf(template, args...), nil)
	}
}

func (l *logger) CDebugw(ctx context.Context, msg string, keysAndValues ...interface{}) {
	if key := debugKeyOf(ctx); l.enabled(DEBUG, key) {
		l.emit(DEBUG, key, msg, keysAndValues)
	}
}

func (l *logger) Infof(template string, args ...interface{}) {
	if l.enabled(INFO, "") {
		l.emit(INFO, "", fmt.Sprintf(template, args...), nil)
	}
}

func (l *logger) Infow(msg string, keysAndValues ...interface{}) {
	if l.enabled(INFO, "") {
		l.emit(INFO, "", msg, keysAndValues)
	}
}

func (l *logger) Warnw(msg string, keysAndValues ...interface{}) {
	if l.enabled(WARN, "") {
		l.emit(WARN, "", msg, keysAndValues)
	}
}

func (l *logger) With(keysAndValues ...interface{}) Logger {
	child := *l
	child.fields = appendPairs(append([]zapcore.Field{}, l.fields...), keysAndValues)
	return &child
}

func (l *logger) Sublogger(subname string) Logger {
	child := *l
	if l.name != "" {
		child.name = l.name + "." + subname
	} else {
		child.name = subname
	}
	child.level = NewAtomicLevelAt(l.level.Get())
	return &child
}

func (l *logger) SetLevel(level Level) {
	l.level.Set(level)
}

func (l *logger) GetLevel() Level {
	return l.level.Get()
}

func (l *logger) AddAppender(appender Appender) {
	l.sinks.add(appender)
}

func (l *logger) Sync() error {
	return l.sinks.sync()
}

package logging

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap/zapcore"
)

// Level is a log level. Its values match zapcore's.
type Level int8

const (
	// DEBUG log level.
	DEBUG = Level(zapcore.DebugLevel)
	// INFO log level.
	INFO = Level(zapcore.InfoLevel)
	// WARN log level.
	WARN = Level(zapcore.WarnLevel)
	// ERROR log level.
	ERROR = Level(zapcore.ErrorLevel)
)

func (level Level) zap() zapcore.Level {
	return zapcore.Level(level)
}

func (level Level) String() string {
	return level.zap().String()
}

// LevelFromString parses one of `debug`, `info`, `warn` (or `warning`) and `error`, ignoring case.
func LevelFromString(inp string) (Level, error) {
	name := strings.ToLower(inp)
	if name == "warning" {
		name = "warn"
	}
	zl, err := zapcore.ParseLevel(name)
	if err != nil || name == "" || zl < zapcore.DebugLevel || zl > zapcore.ErrorLevel {
		return INFO, errors.Errorf("unknown log level %q", inp)
	}
	return Level(zl), nil
}

// AtomicLevel is a level that can be read and changed concurrently.
type AtomicLevel struct {
	val *atomic.Int32
}

// NewAtomicLevelAt returns an AtomicLevel set to initLevel.
func NewAtomicLevelAt(initLevel Level) AtomicLevel {
	return AtomicLevel{val: atomic.NewInt32(int32(initLevel))}
}

// Set changes the level.
func (level AtomicLevel) Set(newLevel Level) {
	level.val.Store(int32(newLevel))
}

// Get returns the level.
func (level AtomicLevel) Get() Level {
	return Level(level.val.Load())
}

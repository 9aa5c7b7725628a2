package logging

import (
	"io"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

// TimeFormat is the timestamp layout of console lines.
const TimeFormat = "2006-01-02T15:04:05.000Z0700"

// Appender is an output for log entries. Every zapcore.Core is an Appender.
type Appender interface {
	Write(entry zapcore.Entry, fields []zapcore.Field) error
	Sync() error
}

// consoleEncoder writes tab separated lines: time, level, logger name, caller, message and, if
// there are any, the fields as a JSON object. Levels are never colored so files stay plain text.
func consoleEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		NameKey:          "logger",
		CallerKey:        "caller",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeTime:       zapcore.TimeEncoderOfLayout(TimeFormat),
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: "\t",
	})
}

type writerAppender struct {
	w   io.Writer
	enc zapcore.Encoder
}

// NewWriterAppender returns an appender writing console lines to w, such as stderr or a rotating
// log file. Sync flushes w if it can be flushed.
func NewWriterAppender(w io.Writer) Appender {
	return &writerAppender{w: w, enc: consoleEncoder()}
}

func (wa *writerAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	buf, err := wa.enc.EncodeEntry(entry, fields)
	if err != nil {
		return err
	}
	defer buf.Free()
	_, err = wa.w.Write(buf.Bytes())
	return err
}

func (wa *writerAppender) Sync() error {
	if syncer, ok := wa.w.(zapcore.WriteSyncer); ok {
		return syncer.Sync()
	}
	return nil
}

type testAppender struct {
	tb  testing.TB
	enc zapcore.Encoder
}

// NewTestAppender returns an appender that writes console lines through tb.Log, so they are
// attributed to the test that produced them.
func NewTestAppender(tb testing.TB) Appender {
	return &testAppender{tb: tb, enc: consoleEncoder()}
}

func (ta *testAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	ta.tb.Helper()
	buf, err := ta.enc.EncodeEntry(entry, fields)
	if err != nil {
		return err
	}
	defer buf.Free()
	ta.tb.Log(strings.TrimSuffix(buf.String(), zapcore.DefaultLineEnding))
	return nil
}

func (ta *testAppender) Sync() error {
	return nil
}

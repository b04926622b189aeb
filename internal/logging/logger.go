// Package logging provides a shared logger and log utilities to be used in all internal packages.
package logging

import (
	"fmt"
	"io"
	"os"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

var (
	L *zap.Logger
	S *zap.SugaredLogger

	level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
)

func init() {
	setLogger(newLogger(level, os.Stderr, isTerminal()))
}

func setLogger(logger *zap.Logger) {
	L = logger
	// helpers below add a frame, skip it so the caller points at the call site
	S = logger.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func newLogger(atom zap.AtomicLevel, out io.Writer, console bool) *zap.Logger {
	var encoder zapcore.Encoder
	if console {
		encoder = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			MessageKey: "message",

			LevelKey:    "level",
			EncodeLevel: zapcore.CapitalColorLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.ISO8601TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		})
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	writer := zapcore.Lock(zapcore.AddSync(&redactingWriter{out: out}))
	core := zapcore.NewCore(encoder, writer, atom)

	return zap.New(core, zap.AddCaller())
}

// SetLevel changes the minimum level of messages written by L and S. Valid
// levels are debug, info, warn and error.
func SetLevel(name string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}

	level.SetLevel(l)
	return nil
}

// PatchLogger replaces the shared logger with one that writes JSON to writer
// at debug level, and restores the original when the test ends.
func PatchLogger(t testing.TB, writer io.Writer) {
	origL, origS := L, S
	setLogger(newLogger(zap.NewAtomicLevelAt(zapcore.DebugLevel), writer, false))

	t.Cleanup(func() {
		L, S = origL, origS
	})
}

func Debugf(format string, args ...interface{}) {
	S.Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	S.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	S.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	S.Errorf(format, args...)
}

func Sync() {
	_ = L.Sync()
}

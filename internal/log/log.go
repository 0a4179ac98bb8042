// Package log is the structured logging facade used by the commands and the
// protocol state machines. It wraps a single zerolog.Logger.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const logTestWriterName = "log_test_writer"

var (
	mu     sync.RWMutex
	logger zerolog.Logger
	level  = LogLevelError

	// logTestWriter is selected by Init when output is logTestWriterName.
	logTestWriter io.Writer = io.Discard

	// errorLogger receives a copy of every error-level event when set.
	errorLogger *zerolog.Logger
)

func init() {
	// Quiet until Init is called, so that library users get no output by
	// default.
	logger = zerolog.New(io.Discard)
}

// Init configures the global logger. output is "stdout", "stderr" or a file
// path. errorOutput, when not nil, additionally receives error and fatal
// events as JSON. It panics on an invalid level or an unusable output.
func Init(logLevel, output string, errorOutput io.Writer) {
	if err := InitE(logLevel, output, errorOutput); err != nil {
		panic(err.Error())
	}
}

// InitE is like Init but returns the error instead of panicking.
func InitE(logLevel, output string, errorOutput io.Writer) error {
	lvl, err := zerolog.ParseLevel(logLevel)
	if err != nil || logLevel == "" {
		return fmt.Errorf("invalid log level: %q", logLevel)
	}

	var out io.Writer
	switch output {
	case "stdout":
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}
	case "stderr", "":
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	case logTestWriterName:
		out = logTestWriter
	default:
		f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("cannot create log output: %w", err)
		}
		out = f
	}

	mu.Lock()
	defer mu.Unlock()

	logger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	level = logLevel
	errorLogger = nil
	if errorOutput != nil {
		l := zerolog.New(errorOutput).Level(zerolog.ErrorLevel).With().Timestamp().Logger()
		errorLogger = &l
	}
	return nil
}

// Logger returns the configured logger, for callers that need zerolog's
// builder API directly.
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

// Level returns the level passed to the last Init call.
func Level() string {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

func event(lvl zerolog.Level) *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return logger.WithLevel(lvl)
}

func errorEvent(lvl zerolog.Level, msg string) {
	mu.RLock()
	el := errorLogger
	mu.RUnlock()
	if el != nil {
		el.WithLevel(lvl).Msg(msg)
	}
}

// withKeyValues adds alternating key/value pairs to e. A trailing key without
// a value is logged under "!BADKEY".
func withKeyValues(e *zerolog.Event, keyvalues []interface{}) *zerolog.Event {
	for i := 0; i < len(keyvalues); i += 2 {
		key, ok := keyvalues[i].(string)
		if !ok || i+1 >= len(keyvalues) {
			e = e.Interface("!BADKEY", keyvalues[i])
			continue
		}
		e = e.Interface(key, keyvalues[i+1])
	}
	return e
}

func Debug(args ...interface{}) { event(zerolog.DebugLevel).Msg(fmt.Sprint(args...)) }

func Debugf(template string, args ...interface{}) {
	event(zerolog.DebugLevel).Msgf(template, args...)
}

func Debugw(msg string, keyvalues ...interface{}) {
	withKeyValues(event(zerolog.DebugLevel), keyvalues).Msg(msg)
}

func Info(args ...interface{}) { event(zerolog.InfoLevel).Msg(fmt.Sprint(args...)) }

func Infof(template string, args ...interface{}) {
	event(zerolog.InfoLevel).Msgf(template, args...)
}

func Infow(msg string, keyvalues ...interface{}) {
	withKeyValues(event(zerolog.InfoLevel), keyvalues).Msg(msg)
}

func Warn(args ...interface{}) { event(zerolog.WarnLevel).Msg(fmt.Sprint(args...)) }

func Warnf(template string, args ...interface{}) {
	event(zerolog.WarnLevel).Msgf(template, args...)
}

func Warnw(msg string, keyvalues ...interface{}) {
	withKeyValues(event(zerolog.WarnLevel), keyvalues).Msg(msg)
}

func Error(args ...interface{}) {
	msg := fmt.Sprint(args...)
	event(zerolog.ErrorLevel).Msg(msg)
	errorEvent(zerolog.ErrorLevel, msg)
}

func Errorf(template string, args ...interface{}) {
	msg := fmt.Sprintf(template, args...)
	event(zerolog.ErrorLevel).Msg(msg)
	errorEvent(zerolog.ErrorLevel, msg)
}

// Fatal logs at fatal level and exits the process.
func Fatal(args ...interface{}) {
	msg := fmt.Sprint(args...)
	errorEvent(zerolog.FatalLevel, msg)
	event(zerolog.FatalLevel).Msg(msg)
	os.Exit(1)
}

func Fatalf(template string, args ...interface{}) {
	Fatal(fmt.Sprintf(template, args...))
}

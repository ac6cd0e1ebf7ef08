package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Logger struct {
	ZeroLogger *zerolog.Logger
}

var defaultLogger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Log is the application wide logger. It writes to stderr at info level until
// DoConfigureLogger is called.
var Log = Logger{ZeroLogger: &defaultLogger}

func (l *Logger) event(e *zerolog.Event, msg string, err []error) {
	if len(err) == 1 && err[0] != nil {
		e = e.Err(err[0])
	}
	e.Msg(msg)
}

func (l *Logger) Debug(msg string, err ...error) {
	l.event(l.ZeroLogger.Debug(), msg, err)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.ZeroLogger.Debug().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Info(msg string, err ...error) {
	l.event(l.ZeroLogger.Info(), msg, err)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.ZeroLogger.Info().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(msg string, err ...error) {
	l.event(l.ZeroLogger.Warn(), msg, err)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.ZeroLogger.Warn().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(msg string, err ...error) {
	l.event(l.ZeroLogger.Error(), msg, err)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.ZeroLogger.Error().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Fatal(msg string, err ...error) {
	l.event(l.ZeroLogger.Fatal(), msg, err)
}

func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.ZeroLogger.Fatal().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Panic(msg string, err ...error) {
	l.event(l.ZeroLogger.Panic(), msg, err)
}

// SetOutput points the logger somewhere else, mostly useful in tests
func (l *Logger) SetOutput(w io.Writer) {
	logger := l.ZeroLogger.Output(w)
	l.ZeroLogger = &logger
}

func DoConfigureLogger(logPath string, logLevel string, prettyLogging bool) {
	var out io.Writer = os.Stderr
	if prettyLogging {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	if logPath != "" {
		file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			defaultLogger.Error().Err(err).Msgf("Could not open log file %s, logging to stderr only", logPath)
		} else {
			out = zerolog.MultiLevelWriter(out, file)
		}
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	Log.ZeroLogger = &logger

	// Set the log level (default to info)
	switch strings.ToLower(logLevel) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

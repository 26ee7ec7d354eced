package logger

import (
	"io"
	"os"
	"syscall"
	"time"

	"codeberg.org/mutker/nvfan/internal/errors"
	"github.com/rs/zerolog"
)

var log = newConsole(os.Stderr, false)

// LogLevel mirrors zerolog's levels from debug upward.
type LogLevel int8

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// LogEvent is a pending log entry; finish it with Msg or Send.
type LogEvent struct {
	*zerolog.Event
}

// newConsole builds a human readable logger. Under a service manager the
// journal already stamps each line, so timestamps are left out.
func newConsole(w io.Writer, isService bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	if isService {
		output.FormatTimestamp = func(any) string { return "" }
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// Init configures the console logger: warnings by default, info with
// verbose, everything with debug.
func Init(debug, verbose, isService bool) {
	log = newConsole(os.Stderr, isService)

	switch {
	case debug:
		SetLogLevel(DebugLevel)
	case verbose:
		SetLogLevel(InfoLevel)
	default:
		SetLogLevel(WarnLevel)
	}
}

// SetOutput replaces the log destination with a JSON writer.
func SetOutput(w io.Writer) {
	log = zerolog.New(w).With().Timestamp().Logger()
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	zerolog.SetGlobalLevel(zerolog.Level(level))
}

// IsService checks if the application is running as a service
func IsService() bool {
	if _, err := os.Stdin.Stat(); err != nil {
		return true
	}
	if os.Getenv("SERVICE_NAME") != "" || os.Getenv("INVOCATION_ID") != "" {
		return true
	}
	if os.Getppid() == 1 {
		return true
	}

	return syscall.Getpgrp() == syscall.Getpid()
}

// Debug logs a debug message
func Debug() *LogEvent {
	return &LogEvent{log.Debug()}
}

// Info logs an info message
func Info() *LogEvent {
	return &LogEvent{log.Info()}
}

// Warn logs a warning message
func Warn() *LogEvent {
	return &LogEvent{log.Warn()}
}

// Error logs an error message
func Error() *LogEvent {
	return &LogEvent{log.Error()}
}

// ErrorWithCode logs an error message tagged with the error's code.
// Plain errors are logged without a code.
func ErrorWithCode(err error) *LogEvent {
	event := log.Error().Err(err)
	if code := errors.CodeOf(err); code != "" {
		event = event.Str("error_code", string(code))
	}

	return &LogEvent{event}
}

// Fatal logs a fatal message and exits the program
func Fatal() *LogEvent {
	return &LogEvent{log.Fatal()}
}

// FatalWithCode logs a fatal message tagged with the error's code and exits the program
func FatalWithCode(err error) *LogEvent {
	event := log.Fatal().Err(err)
	if code := errors.CodeOf(err); code != "" {
		event = event.Str("error_code", string(code))
	}

	return &LogEvent{event}
}

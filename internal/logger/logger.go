package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	defaultLogger zerolog.Logger
	once          sync.Once
)

// Init initializes the default logger writing JSON to os.Stdout.
// It ensures that the logger is initialized only once.
func Init() {
	once.Do(func() {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		defaultLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	})
}

// Get returns the initialized default logger.
// It calls Init() to ensure the logger is ready before returning it.
func Get() zerolog.Logger {
	Init()
	return defaultLogger
}

// Info logs an informational message using the default logger.
// Args are alternating key/value pairs.
func Info(msg string, args ...any) {
	l := Get()
	event(l.Info(), args).Msg(msg)
}

// Warn logs a warning message using the default logger.
func Warn(msg string, args ...any) {
	l := Get()
	event(l.Warn(), args).Msg(msg)
}

// Error logs an error message using the default logger.
func Error(msg string, args ...any) {
	l := Get()
	event(l.Error(), args).Msg(msg)
}

// Debug logs a debug message using the default logger.
func Debug(msg string, args ...any) {
	l := Get()
	event(l.Debug(), args).Msg(msg)
}

func event(e *zerolog.Event, args []any) *zerolog.Event {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, args[i+1])
	}
	return e
}

// Package logging provides the json structured leveled logger used by the
// translator lambda.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// ServiceLogger is a json structured leveled logger used to log messages to
// stdout, where the lambda runtime forwards them to cloudwatch.
type ServiceLogger struct {
	*zerolog.Logger
}

var (
	serviceLogLevelToZeroLogLevel = map[string]zerolog.Level{
		"TRACE": zerolog.TraceLevel,
		"DEBUG": zerolog.DebugLevel,
		"INFO":  zerolog.InfoLevel,
		"ERROR": zerolog.ErrorLevel,
	}
)

// ValidLogLevels lists the log levels accepted by New.
var ValidLogLevels = []string{"TRACE", "DEBUG", "INFO", "ERROR"}

// New creates and returns a new ServiceLogger writing to stdout.
func New(logLevel string) (ServiceLogger, error) {
	return NewWithWriter(logLevel, os.Stdout)
}

// NewWithWriter creates and returns a new ServiceLogger writing to w.
func NewWithWriter(logLevel string, w io.Writer) (ServiceLogger, error) {
	zerologLevel, exists := serviceLogLevelToZeroLogLevel[logLevel]
	if !exists {
		return ServiceLogger{}, fmt.Errorf("invalid log level provided %s, supported values are %v", logLevel, ValidLogLevels)
	}

	serviceLog := zerolog.New(w).Level(zerologLevel).With().Timestamp().Logger()

	return ServiceLogger{
		Logger: &serviceLog,
	}, nil
}

// Nop returns a ServiceLogger that discards everything.
func Nop() ServiceLogger {
	l := zerolog.Nop()
	return ServiceLogger{Logger: &l}
}

// With returns a child ServiceLogger with the given string fields attached.
func (l ServiceLogger) With(fields map[string]string) ServiceLogger {
	ctx := l.Logger.With()
	for k, v := range fields {
		ctx = ctx.Str(k, v)
	}

	child := ctx.Logger()
	return ServiceLogger{Logger: &child}
}

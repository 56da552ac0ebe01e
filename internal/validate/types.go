// SPDX-License-Identifier: MIT
package validate

import (
	"strings"

	"github.com/rs/zerolog"
)

// LogLevel is a log level accepted in configuration.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelAliases = map[string]LogLevel{
	"warning": LogLevelWarn,
	"err":     LogLevelError,
}

// ErrInvalidLogLevel is returned by ParseLogLevel for anything outside
// debug, info, warn and error.
var ErrInvalidLogLevel = &Error{
	Field:   "logLevel",
	Message: "invalid log level (must be: debug, info, warn, error)",
}

func (l LogLevel) String() string { return string(l) }

// Zerolog maps l onto the logger's level; unknown values map to info.
func (l LogLevel) Zerolog() zerolog.Level {
	switch l {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLogLevel normalises case, resolves aliases and rejects levels the
// service does not expose (trace, fatal, panic).
func ParseLogLevel(s string) (LogLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if alias, ok := logLevelAliases[s]; ok {
		return alias, nil
	}
	switch level := LogLevel(s); level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return level, nil
	}
	return "", ErrInvalidLogLevel
}

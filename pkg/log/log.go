package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

const (
	JSONFormat   = "json"
	TextFormat   = "text"
	LogfmtFormat = "logfmt"

	// EnvLogLevel and EnvLogFormat hold defaults for the CLI log flags.
	EnvLogLevel  = "ASSETREF_LOG_LEVEL"
	EnvLogFormat = "ASSETREF_LOG_FORMAT"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnknownLevel    = fmt.Errorf("%w: unknown log level", ErrInvalidArgument)
	ErrUnknownFormat   = fmt.Errorf("%w: unknown log format", ErrInvalidArgument)
)

// CreateHandlerWithStrings creates a [slog.Handler] that writes to w, using
// the given level and format strings.
func CreateHandlerWithStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level, err := GetLevel(logLevel)
	if err != nil {
		return nil, err
	}

	formatter, err := GetFormatter(logFormat)
	if err != nil {
		return nil, err
	}

	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: formatter != charmlog.TextFormatter,
	}), nil
}

// GetLevel parses a log level string.
func GetLevel(level string) (charmlog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return charmlog.ErrorLevel, nil
	case "warn", "warning":
		return charmlog.WarnLevel, nil
	case "info":
		return charmlog.InfoLevel, nil
	case "debug", "trace":
		return charmlog.DebugLevel, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
}

// GetFormatter parses a log format string. An empty string selects text.
func GetFormatter(format string) (charmlog.Formatter, error) {
	switch strings.ToLower(format) {
	case TextFormat, "":
		return charmlog.TextFormatter, nil
	case LogfmtFormat:
		return charmlog.LogfmtFormatter, nil
	case JSONFormat:
		return charmlog.JSONFormatter, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// EnvOrDefault returns the value of the environment variable key, or def if
// it is unset or empty.
func EnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

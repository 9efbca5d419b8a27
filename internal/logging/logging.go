// SPDX-License-Identifier: MPL-2.0

// Package logging builds the structured logger shared by the CLI and the
// generator supervisor.
//
// Generator output is routed through a Sink. The production Sink is a
// charmbracelet/log Logger, which serializes writes internally and is safe to
// call from the stdout and stderr forwarders at the same time. The same logger
// is installed as the log/slog default handler so library code can keep using
// slog.Debug/slog.Warn.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// FormatText renders human-readable colored lines.
	FormatText Format = "text"
	// FormatJSON renders one JSON object per line.
	FormatJSON Format = "json"
	// FormatLogfmt renders logfmt key=value lines.
	FormatLogfmt Format = "logfmt"
)

// ErrInvalidFormat is the sentinel error wrapped by InvalidFormatError.
var ErrInvalidFormat = errors.New("invalid log format")

type (
	// Format selects the log line encoding.
	Format string

	// InvalidFormatError is returned when a Format value is not recognized.
	InvalidFormatError struct {
		Value Format
	}

	// Sink receives line-oriented messages at a given severity. Implementations
	// must be safe for concurrent use.
	Sink interface {
		Debug(msg any, keyvals ...any)
		Info(msg any, keyvals ...any)
		Warn(msg any, keyvals ...any)
		Error(msg any, keyvals ...any)
	}

	// Options configures New.
	Options struct {
		// Writer defaults to os.Stderr.
		Writer io.Writer
		// Level is a charmbracelet/log level name ("debug", "info", ...).
		// Empty means "info".
		Level string
		// Verbose forces the debug level regardless of Level.
		Verbose bool
		// Format defaults to FormatText.
		Format Format
		// Prefix is prepended to every line (e.g. "doxygen").
		Prefix string
		// Timestamps enables the time column.
		Timestamps bool
	}
)

// Error implements the error interface.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid log format %q (expected text, json or logfmt)", e.Value)
}

// Unwrap returns ErrInvalidFormat for errors.Is.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// ParseFormat parses a format name. The empty string yields FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatLogfmt:
		return f, nil
	default:
		return "", &InvalidFormatError{Value: Format(s)}
	}
}

// New creates a charmbracelet/log Logger from opts.
func New(opts Options) (*log.Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}

	level := log.InfoLevel
	if opts.Level != "" {
		level, err = log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
	}
	if opts.Verbose {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.Timestamps,
		TimeFormat:      time.TimeOnly,
		Formatter:       formatter(format),
	})
	return logger, nil
}

// InstallDefault makes logger the handler behind slog's default logger.
func InstallDefault(logger *log.Logger) {
	slog.SetDefault(slog.New(logger))
}

// Discard returns a Sink that drops everything.
func Discard() Sink {
	return log.New(io.Discard)
}

func formatter(f Format) log.Formatter {
	switch f {
	case FormatJSON:
		return log.JSONFormatter
	case FormatLogfmt:
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

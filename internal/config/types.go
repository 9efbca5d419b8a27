// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/PhilLello/doxyreport/internal/logging"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

const (
	// DefaultGeneratorCommand is the generator launched when none is configured.
	DefaultGeneratorCommand = "doxygen"
	// DefaultDrainTimeout bounds how long forwarders may drain after the generator exits.
	DefaultDrainTimeout = 5 * time.Second
	// DefaultWatchDebounce is the quiet period before a watch-triggered rerun.
	DefaultWatchDebounce = 500 * time.Millisecond
	// DefaultLocale is used when no locale is configured.
	DefaultLocale = "en"
)

var (
	// ErrInvalidGeneratorConfig is the sentinel error wrapped by InvalidGeneratorConfigError.
	ErrInvalidGeneratorConfig = errors.New("invalid generator config")
	// ErrInvalidLogConfig is the sentinel error wrapped by InvalidLogConfigError.
	ErrInvalidLogConfig = errors.New("invalid log config")
	// ErrInvalidLocale is returned when the locale is not a BCP 47 tag.
	ErrInvalidLocale = errors.New("invalid locale")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Config holds the application configuration.
	Config struct {
		// Generator configures how doxygen is launched.
		Generator GeneratorConfig `json:"generator" mapstructure:"generator"`
		// Log configures the CLI logger.
		Log LogConfig `json:"log" mapstructure:"log"`
		// Locale selects the report name/description bundle.
		Locale string `json:"locale" mapstructure:"locale"`
		// Compat holds switches that reproduce legacy output byte-for-byte.
		Compat CompatConfig `json:"compat" mapstructure:"compat"`
		// Watch configures watch mode.
		Watch WatchConfig `json:"watch" mapstructure:"watch"`
	}

	// GeneratorConfig configures the generator subprocess.
	GeneratorConfig struct {
		// Command is split into words with shell rules; the Doxyfile path is appended.
		Command string `json:"command" mapstructure:"command"`
		// EnvFile is an optional dotenv file merged into the generator environment.
		EnvFile string `json:"env_file" mapstructure:"env_file"`
		// Strict makes launch failures fatal.
		Strict bool `json:"strict" mapstructure:"strict"`
		// FailOnExitCode makes a non-zero generator exit fatal.
		FailOnExitCode bool `json:"fail_on_exit_code" mapstructure:"fail_on_exit_code"`
		// Timeout kills the generator after this long. Zero disables it.
		Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
		// DrainTimeout bounds the forwarder join after the generator exits.
		DrainTimeout time.Duration `json:"drain_timeout" mapstructure:"drain_timeout"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level  string `json:"level" mapstructure:"level"`
		Format string `json:"format" mapstructure:"format"`
	}

	// CompatConfig holds compatibility switches.
	CompatConfig struct {
		// EmptyAggregateInputs emits one "" INPUT entry per reactor project when
		// an aggregate run has no explicit input folders.
		EmptyAggregateInputs bool `json:"empty_aggregate_inputs" mapstructure:"empty_aggregate_inputs"`
	}

	// WatchConfig configures watch mode.
	WatchConfig struct {
		// Debounce is the quiet period before a rerun.
		Debounce time.Duration `json:"debounce" mapstructure:"debounce"`
		// Ignore holds extra doublestar patterns excluded from watching.
		Ignore []string `json:"ignore" mapstructure:"ignore"`
	}

	// InvalidGeneratorConfigError collects field-level GeneratorConfig errors.
	InvalidGeneratorConfigError struct {
		FieldErrors []error
	}

	// InvalidLogConfigError collects field-level LogConfig errors.
	InvalidLogConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig and collects errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Command:      DefaultGeneratorCommand,
			DrainTimeout: DefaultDrainTimeout,
		},
		Log: LogConfig{
			Level:  "info",
			Format: string(logging.FormatText),
		},
		Locale: DefaultLocale,
		Watch: WatchConfig{
			Debounce: DefaultWatchDebounce,
			Ignore:   []string{},
		},
	}
}

// IsValid returns whether the GeneratorConfig has valid fields.
func (c GeneratorConfig) IsValid() (bool, []error) {
	var errs []error
	if c.Command == "" {
		errs = append(errs, errors.New("generator.command must not be empty"))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("generator.timeout must not be negative, got %s", c.Timeout))
	}
	if c.DrainTimeout < 0 {
		errs = append(errs, fmt.Errorf("generator.drain_timeout must not be negative, got %s", c.DrainTimeout))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidGeneratorConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidGeneratorConfigError) Error() string {
	return fmt.Sprintf("invalid generator config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidGeneratorConfig for errors.Is() compatibility.
func (e *InvalidGeneratorConfigError) Unwrap() error { return ErrInvalidGeneratorConfig }

// IsValid returns whether the LogConfig has valid fields.
func (c LogConfig) IsValid() (bool, []error) {
	var errs []error
	if _, err := log.ParseLevel(c.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if _, err := logging.ParseFormat(c.Format); err != nil {
		errs = append(errs, fmt.Errorf("log.format: %w", err))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidLogConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidLogConfigError) Error() string {
	return fmt.Sprintf("invalid log config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidLogConfig for errors.Is() compatibility.
func (e *InvalidLogConfigError) Unwrap() error { return ErrInvalidLogConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Generator.IsValid() and Log.IsValid() and checks that the
// locale parses as a BCP 47 tag. Compat and Watch need no validation beyond
// what the CUE schema and Viper's decoder already enforce.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Generator.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		errs = append(errs, fmt.Errorf("%w %q: %w", ErrInvalidLocale, c.Locale, err))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

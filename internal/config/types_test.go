// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
	"time"
)

func TestGeneratorConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cfg   GeneratorConfig
		valid bool
	}{
		{name: "defaults", cfg: DefaultConfig().Generator, valid: true},
		{name: "empty command", cfg: GeneratorConfig{}, valid: false},
		{name: "negative timeout", cfg: GeneratorConfig{Command: "doxygen", Timeout: -time.Second}, valid: false},
		{name: "negative drain", cfg: GeneratorConfig{Command: "doxygen", DrainTimeout: -1}, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			valid, errs := tt.cfg.IsValid()
			if valid != tt.valid {
				t.Fatalf("IsValid() = %v (%v), want %v", valid, errs, tt.valid)
			}
			if !valid && !errors.Is(errs[0], ErrInvalidGeneratorConfig) {
				t.Errorf("error should wrap ErrInvalidGeneratorConfig, got %v", errs[0])
			}
		})
	}
}

func TestLogConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cfg   LogConfig
		valid bool
	}{
		{cfg: LogConfig{Level: "debug", Format: "json"}, valid: true},
		{cfg: LogConfig{Level: "warn", Format: "logfmt"}, valid: true},
		{cfg: LogConfig{Level: "loud", Format: "text"}, valid: false},
		{cfg: LogConfig{Level: "info", Format: "yaml"}, valid: false},
	}

	for _, tt := range tests {
		valid, errs := tt.cfg.IsValid()
		if valid != tt.valid {
			t.Errorf("%+v: IsValid() = %v (%v), want %v", tt.cfg, valid, errs, tt.valid)
			continue
		}
		if !valid && !errors.Is(errs[0], ErrInvalidLogConfig) {
			t.Errorf("error should wrap ErrInvalidLogConfig, got %v", errs[0])
		}
	}
}

func TestConfig_IsValidCollectsFieldErrors(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Generator.Command = ""
	cfg.Log.Format = "xml"
	cfg.Locale = "??"

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("expected invalid config")
	}

	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) {
		t.Fatalf("expected *InvalidConfigError, got %T", errs[0])
	}
	if len(cfgErr.FieldErrors) != 3 {
		t.Errorf("got %d field errors, want 3: %v", len(cfgErr.FieldErrors), cfgErr.FieldErrors)
	}
	if !errors.Is(cfgErr.FieldErrors[2], ErrInvalidLocale) {
		t.Errorf("locale error should wrap ErrInvalidLocale, got %v", cfgErr.FieldErrors[2])
	}
}

// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"testing"
)

func TestLoadOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       LoadOptions
		wantErrors int
	}{
		{name: "all empty", opts: LoadOptions{}},
		{name: "all valid", opts: LoadOptions{ConfigFilePath: "/tmp/config.cue", ConfigDirPath: "/tmp/config", BaseDir: "/tmp/base"}},
		{name: "whitespace file path", opts: LoadOptions{ConfigFilePath: "   "}, wantErrors: 1},
		{name: "whitespace dir and base", opts: LoadOptions{ConfigDirPath: "\t", BaseDir: "  "}, wantErrors: 2},
		{name: "all invalid", opts: LoadOptions{ConfigFilePath: " ", ConfigDirPath: "\t", BaseDir: "  \t "}, wantErrors: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if tt.wantErrors == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, ErrInvalidLoadOptions) {
				t.Fatalf("error should wrap ErrInvalidLoadOptions, got %v", err)
			}
			var loadErr *InvalidLoadOptionsError
			if !errors.As(err, &loadErr) {
				t.Fatalf("error should be *InvalidLoadOptionsError, got %T", err)
			}
			if len(loadErr.FieldErrors) != tt.wantErrors {
				t.Errorf("got %d field errors, want %d: %v", len(loadErr.FieldErrors), tt.wantErrors, loadErr.FieldErrors)
			}
		})
	}
}

func TestProvider_Load(t *testing.T) {
	t.Parallel()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigDirPath: t.TempDir(),
		BaseDir:       t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Generator.Command != DefaultGeneratorCommand {
		t.Errorf("Generator.Command = %q", cfg.Generator.Command)
	}
}

func TestProvider_LoadRejectsInvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := NewProvider().Load(context.Background(), LoadOptions{BaseDir: "   "})
	if !errors.Is(err, ErrInvalidLoadOptions) {
		t.Fatalf("expected ErrInvalidLoadOptions, got %v", err)
	}
}

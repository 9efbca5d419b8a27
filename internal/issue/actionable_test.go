// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "write Doxyfile"},
			expected: "failed to write Doxyfile",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "write Doxyfile",
				Resource:  "target/doxygen/Doxyfile",
			},
			expected: "failed to write Doxyfile: target/doxygen/Doxyfile",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "launch doxygen",
				Cause:     errors.New("executable file not found in $PATH"),
			},
			expected: "failed to launch doxygen: executable file not found in $PATH",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "load project descriptor",
				Resource:  "./doxyreport.cue",
				Cause:     errors.New("file not found"),
			},
			expected: "failed to load project descriptor: ./doxyreport.cue: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &ActionableError{Operation: "test", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	errNoCause := &ActionableError{Operation: "test"}
	if errNoCause.Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name:     "simple error non-verbose",
			err:      &ActionableError{Operation: "load config"},
			contains: []string{"failed to load config"},
		},
		{
			name: "error with suggestions",
			err: &ActionableError{
				Operation:   "write Doxyfile",
				Resource:    "target/doxygen/Doxyfile",
				Suggestions: []string{"Check directory permissions", "Free some disk space"},
			},
			contains: []string{
				"failed to write Doxyfile",
				"target/doxygen/Doxyfile",
				"• Check directory permissions",
				"• Free some disk space",
			},
		},
		{
			name: "error chain in verbose mode",
			err: &ActionableError{
				Operation: "parse config",
				Cause:     errors.New("syntax error"),
			},
			verbose:  true,
			contains: []string{"failed to parse config", "Error chain:", "1. syntax error"},
		},
		{
			name: "no error chain in non-verbose",
			err: &ActionableError{
				Operation: "parse config",
				Cause:     errors.New("syntax error"),
			},
			contains: []string{"failed to parse config: syntax error"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "nested error chain verbose",
			err: &ActionableError{
				Operation: "run report",
				Cause: &ActionableError{
					Operation: "launch doxygen",
					Cause:     errors.New("file not found"),
				},
			},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. failed to launch doxygen: file not found",
				"2. file not found",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(tt.verbose)

			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	tests := []struct {
		name       string
		setup      func() *ErrorContext
		wantNil    bool
		checkError func(t *testing.T, err *ActionableError)
	}{
		{
			name: "minimal with operation",
			setup: func() *ErrorContext {
				return NewErrorContext().WithOperation("test operation")
			},
			checkError: func(t *testing.T, err *ActionableError) {
				t.Helper()
				if err.Operation != "test operation" {
					t.Errorf("Operation = %q, want %q", err.Operation, "test operation")
				}
			},
		},
		{
			name: "missing operation returns nil",
			setup: func() *ErrorContext {
				return NewErrorContext().WithResource("some/path")
			},
			wantNil: true,
		},
		{
			name: "full context",
			setup: func() *ErrorContext {
				return NewErrorContext().
					WithOperation("load config").
					WithResource("doxyreport.cue").
					WithSuggestion("Check syntax").
					WithSuggestion("Verify permissions").
					WithIssue(ConfigLoadFailedId).
					Wrap(errors.New("parse error"))
			},
			checkError: func(t *testing.T, err *ActionableError) {
				t.Helper()
				if err.Resource != "doxyreport.cue" {
					t.Errorf("Resource = %q", err.Resource)
				}
				if len(err.Suggestions) != 2 {
					t.Errorf("Suggestions count = %d, want 2", len(err.Suggestions))
				}
				if err.IssueID != ConfigLoadFailedId {
					t.Errorf("IssueID = %d, want %d", err.IssueID, ConfigLoadFailedId)
				}
				if err.Cause == nil || err.Cause.Error() != "parse error" {
					t.Errorf("Cause = %v", err.Cause)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup().Build()

			if tt.wantNil {
				if err != nil {
					t.Errorf("Build() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Build() returned nil, want error")
			}
			if tt.checkError != nil {
				tt.checkError(t, err)
			}
		})
	}
}

func TestErrorContext_BuildError(t *testing.T) {
	err := NewErrorContext().WithOperation("launch doxygen").WithIssue(GeneratorNotFoundId).BuildError()
	if err == nil {
		t.Fatal("BuildError() returned nil")
	}

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatal("BuildError() should return *ActionableError")
	}
	if ae.IssueID != GeneratorNotFoundId {
		t.Errorf("IssueID = %d, want %d", ae.IssueID, GeneratorNotFoundId)
	}

	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() should return nil when operation missing")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("original error")
	err := WrapWithContext(cause, "copy module report", "/work/core/target/site/doxygen")
	if err == nil {
		t.Fatal("WrapWithContext returned nil")
	}

	if err.Operation != "copy module report" {
		t.Errorf("Operation = %q", err.Operation)
	}
	if err.Resource != "/work/core/target/site/doxygen" {
		t.Errorf("Resource = %q", err.Resource)
	}
	if !errors.Is(err, cause) {
		t.Error("Cause should be the original error")
	}

	if WrapWithContext(nil, "test", "resource") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}
}

func TestErrorContext_Reuse(t *testing.T) {
	ctx := NewErrorContext().
		WithOperation("copy module report").
		WithResource("target/site/doxygen").
		WithSuggestion("Generate module reports first")

	err1 := ctx.Wrap(errors.New("error 1")).Build()
	err2 := ctx.Wrap(errors.New("error 2")).Build()

	if err1.Cause.Error() == err2.Cause.Error() {
		t.Error("Reused context should allow different causes")
	}
	if err1.Operation != err2.Operation {
		t.Error("Reused context should preserve operation")
	}
}

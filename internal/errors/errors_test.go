//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "validation failed",
		Message:  "invalid value",
		Location: "/tmp/my-crate",
		Field:    "--package-name",
		Context:  map[string]string{"Crate": "my-crate"},
		Hint:     "Use snake_case",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: validation failed")
	assert.Contains(t, output, "Location: /tmp/my-crate")
	assert.Contains(t, output, "Field: --package-name")
	assert.Contains(t, output, "Crate: my-crate")
	assert.Contains(t, output, "invalid value")
	assert.Contains(t, output, "Hint: Use snake_case")
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("bad", "/tmp/x", "--dep", "fix it")

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "validation failed", detail.Type)
	assert.Equal(t, "--dep", detail.Field)
}

func TestErrorFormatsKindPrefix(t *testing.T) {
	err := New(KindParse, `"Bad" is not a valid crate name`)
	assert.Equal(t, `ParseError: "Bad" is not a valid crate name`, err.Error())

	wrapped := IO("writing", "/tmp/x/src/lib.rs", fmt.Errorf("permission denied"))
	assert.Equal(t, "IOError: writing /tmp/x/src/lib.rs: permission denied", wrapped.Error())
	assert.Equal(t, "/tmp/x/src/lib.rs", wrapped.Path)
}

func TestErrorIsMatchesKindSentinel(t *testing.T) {
	tests := []struct {
		kind     Kind
		sentinel error
	}{
		{KindShellCommand, ErrShellCommand},
		{KindIO, ErrIO},
		{KindSerialization, ErrSerialization},
		{KindParse, ErrParse},
		{KindTemplate, ErrTemplate},
		{KindJSON, ErrJSON},
		{KindRuntime, ErrRuntime},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := fmt.Errorf("outer: %w", New(tt.kind, "boom"))
			assert.True(t, errors.Is(err, tt.sentinel))

			kind, ok := KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestKindOfUnclassified(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestShellCommand(t *testing.T) {
	err := ShellCommand("cargo check", 101)
	assert.Equal(t, "ShellCommandError: `cargo check` exited with status 101", err.Error())
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"exit error", NewExitError(errors.New("x"), ExitVerificationFailed), ExitVerificationFailed},
		{"validation", NewValidationError("x", "", "", ""), ExitValidationError},
		{"parse", New(KindParse, "x"), ExitValidationError},
		{"shell", ShellCommand("cargo add serde", 1), ExitShellCommandError},
		{"template", New(KindTemplate, "x"), ExitTemplateError},
		{"io", IO("writing", "/x", errors.New("denied")), ExitIOError},
		{"json", New(KindJSON, "x"), ExitSerializationError},
		{"not found", fmt.Errorf("receipt 3: %w", ErrNotFound), ExitNotFound},
		{"plain", errors.New("x"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Verification Failed", ExitCodeName(ExitVerificationFailed))
	assert.Equal(t, "Unknown", ExitCodeName(42))
}

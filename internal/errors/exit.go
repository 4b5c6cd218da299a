package errors

import "errors"

// Exit codes returned by the cargo-craft binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid flags, names, or dependency specs.
	ExitValidationError = 2

	// ExitShellCommandError indicates an external command failed.
	ExitShellCommandError = 3

	// ExitTemplateError indicates a template failed to render.
	ExitTemplateError = 4

	// ExitIOError indicates a filesystem operation failed.
	ExitIOError = 5

	// ExitSerializationError indicates a receipt or config could not be encoded or decoded.
	ExitSerializationError = 6

	// ExitVerificationFailed indicates a verification stage after `cargo check` failed.
	ExitVerificationFailed = 7

	// ExitNotFound indicates a receipt, log, or config file was not found.
	ExitNotFound = 8
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the command already reported the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrParse):
		return ExitValidationError
	case errors.Is(err, ErrShellCommand):
		return ExitShellCommandError
	case errors.Is(err, ErrTemplate):
		return ExitTemplateError
	case errors.Is(err, ErrIO):
		return ExitIOError
	case errors.Is(err, ErrSerialization), errors.Is(err, ErrJSON):
		return ExitSerializationError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitShellCommandError:
		return "Shell Command Error"
	case ExitTemplateError:
		return "Template Error"
	case ExitIOError:
		return "IO Error"
	case ExitSerializationError:
		return "Serialization Error"
	case ExitVerificationFailed:
		return "Verification Failed"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}

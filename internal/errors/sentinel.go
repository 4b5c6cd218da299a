package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates user input or configuration failed validation.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a file, receipt, or config was not found.
	ErrNotFound = errors.New("not found")

	// ErrShellCommand indicates an external command exited unsuccessfully.
	ErrShellCommand = errors.New("shell command error")

	// ErrIO indicates a filesystem operation failed.
	ErrIO = errors.New("io error")

	// ErrSerialization indicates a value could not be encoded.
	ErrSerialization = errors.New("serialization error")

	// ErrParse indicates an argument or dependency spec could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrTemplate indicates a template failed to parse or execute.
	ErrTemplate = errors.New("template error")

	// ErrJSON indicates a receipt log could not be decoded.
	ErrJSON = errors.New("json error")

	// ErrRuntime indicates an unexpected internal failure.
	ErrRuntime = errors.New("runtime error")
)

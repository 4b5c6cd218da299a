package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure surfaced to the user.
type Kind string

// Error kinds, printed as the prefix of every reported error.
const (
	KindShellCommand  Kind = "ShellCommandError"
	KindIO            Kind = "IOError"
	KindSerialization Kind = "SerializationError"
	KindParse         Kind = "ParseError"
	KindTemplate      Kind = "TemplateError"
	KindJSON          Kind = "JsonError"
	KindRuntime       Kind = "RuntimeError"
)

// Sentinel returns the sentinel error matched by errors.Is for this kind.
func (k Kind) Sentinel() error {
	switch k {
	case KindShellCommand:
		return ErrShellCommand
	case KindIO:
		return ErrIO
	case KindSerialization:
		return ErrSerialization
	case KindParse:
		return ErrParse
	case KindTemplate:
		return ErrTemplate
	case KindJSON:
		return ErrJSON
	default:
		return ErrRuntime
	}
}

// Error is a classified failure. Its message renders as "<Kind>: <message>".
type Error struct {
	Kind    Kind
	Message string

	// Path is the file the failure refers to, if any.
	Path string

	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.Sentinel()
}

// New creates a classified error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a classified error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithCause creates a classified error wrapping cause.
func WithCause(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IO reports a failed filesystem operation on path.
func IO(op, path string, cause error) *Error {
	return &Error{
		Kind:    KindIO,
		Message: fmt.Sprintf("%s %s", op, path),
		Path:    path,
		Cause:   cause,
	}
}

// ShellCommand reports an external command that exited with a non-zero status.
func ShellCommand(command string, status int) *Error {
	return &Error{
		Kind:    KindShellCommand,
		Message: fmt.Sprintf("`%s` exited with status %d", command, status),
	}
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

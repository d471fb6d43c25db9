// Package errors provides error annotation with slog attributes and source
// locations so that failures can be logged with their context intact.
//
// It re-exports the stdlib helpers (Is, As, Unwrap, Join) so call sites only
// need one errors import.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// annotatedError wraps an error with a message, slog attributes, and the
// source location of the Wrap call.
type annotatedError struct {
	err     error
	message string
	attrs   []slog.Attr
	source  string
}

func (e *annotatedError) Error() string {
	if e.message == "" {
		return e.err.Error()
	}
	return e.message + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// Wrap annotates err with a message and optional slog attributes. The caller's
// source location is recorded for logging with SlogError.
func Wrap(err error, message string, attrs ...slog.Attr) error {
	return &annotatedError{
		err:     err,
		message: message,
		attrs:   attrs,
		source:  callerSource(2), //nolint:mnd // skip Wrap and runtime.Caller.
	}
}

// New creates a new annotated error with the caller's source location.
func New(message string, attrs ...slog.Attr) error {
	return &annotatedError{
		err:     errors.New(message),
		message: "",
		attrs:   attrs,
		source:  callerSource(2), //nolint:mnd // skip New and runtime.Caller.
	}
}

// NewSentinel creates a plain error without annotations. Use it for package
// level sentinel errors compared with Is.
func NewSentinel(message string) error {
	return errors.New(message)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join wraps the given errors into a single error.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// SlogError converts an error into a slog.Attr group carrying the message,
// the innermost annotated source location, and all annotation attributes
// collected from the error tree.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{Key: "error", Value: slog.StringValue("<nil>")}
	}

	var (
		annotations []slog.Attr
		source      string
	)
	for unwrapped := err; unwrapped != nil; unwrapped = errors.Unwrap(unwrapped) {
		var annotated *annotatedError
		if errors.As(unwrapped, &annotated) {
			annotations = append(annotations, annotated.attrs...)
			source = annotated.source
			unwrapped = annotated
		}
	}

	attrs := []slog.Attr{slog.String("message", err.Error())}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	if len(annotations) > 0 {
		anys := make([]any, len(annotations))
		for i, a := range annotations {
			anys[i] = a
		}
		attrs = append(attrs, slog.Group("annotations", anys...))
	}

	return slog.Attr{Key: "error", Value: slog.GroupValue(attrs...)}
}

// callerSource formats the file:line of the caller skip frames up the stack.
func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	// Trim the module path prefix so logs stay readable.
	if idx := strings.LastIndex(file, "/"); idx != -1 {
		file = file[idx+1:]
	}
	return fmt.Sprintf("%s:%d", file, line)
}

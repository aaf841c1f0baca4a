package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an error with additional context while preserving the error chain.
// If err is nil, Wrap returns nil.
// If err is already an *Error, the wrapper keeps its code and service.
// Otherwise the result is an Internal error wrapping the original.
func Wrap(err error, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}

	var inner *Error
	if errors.As(err, &inner) {
		wrapped := &Error{
			code:     inner.code,
			message:  message,
			cause:    err,
			service:  inner.service,
			metadata: inner.Metadata(),
		}
		for _, opt := range opts {
			opt(wrapped)
		}
		return wrapped
	}

	return New(ErrCodeInternal, message, append(opts, WithCause(err))...)
}

// WrapWithCode wraps an error with a specific error code.
func WrapWithCode(err error, code ErrorCode, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}
	opts = append(opts, WithCause(err))
	return New(code, message, opts...)
}

// AsError extracts an *Error from an error chain.
// Returns nil if none is found.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Is checks if the outermost *Error in the chain has the given code.
func Is(err error, code ErrorCode) bool {
	if e := AsError(err); e != nil {
		return e.code == code
	}
	return false
}

// Code extracts the error code from an error, if available.
// Returns empty string if err carries no *Error.
func Code(err error) ErrorCode {
	if e := AsError(err); e != nil {
		return e.code
	}
	return ""
}

// Join combines multiple errors into a single error.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// RecoverPanic converts a recovered panic value into an Error.
func RecoverPanic(recovered any, opts ...Option) *Error {
	if recovered == nil {
		return nil
	}
	var message string
	switch v := recovered.(type) {
	case error:
		message = v.Error()
	case string:
		message = v
	default:
		message = fmt.Sprintf("%v", v)
	}
	opts = append([]Option{WithMetadata("panic_value", fmt.Sprintf("%T", recovered))}, opts...)
	return New(ErrCodePanic, message, opts...)
}

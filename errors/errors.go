package errors

import (
	"fmt"
	"maps"
)

// Error is a structured error raised while loading settings or registering
// service agents.
type Error struct {
	code     ErrorCode
	message  string
	cause    error
	service  string // logical service name, if applicable
	metadata map[string]string
}

// Error returns the error message.
func (e *Error) Error() string {
	msg := e.message
	if e.service != "" {
		msg = fmt.Sprintf("%s (service %q)", msg, e.service)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Code returns the error code.
func (e *Error) Code() ErrorCode {
	return e.code
}

// Service returns the logical service name the error relates to, if any.
func (e *Error) Service() string {
	return e.service
}

// Metadata returns a copy of the error metadata.
func (e *Error) Metadata() map[string]string {
	result := make(map[string]string, len(e.metadata))
	maps.Copy(result, e.metadata)
	return result
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Option is a functional option for configuring an Error.
type Option func(*Error)

// WithService sets the logical service name.
func WithService(name string) Option {
	return func(e *Error) {
		e.service = name
	}
}

// WithMetadata adds a metadata key-value pair.
func WithMetadata(key, value string) Option {
	return func(e *Error) {
		if e.metadata == nil {
			e.metadata = make(map[string]string)
		}
		e.metadata[key] = value
	}
}

// WithCause sets the underlying cause.
func WithCause(cause error) Option {
	return func(e *Error) {
		e.cause = cause
	}
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string, opts ...Option) *Error {
	e := &Error{
		code:    code,
		message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Newf creates a new Error with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Configuration creates a configuration error.
func Configuration(message string, opts ...Option) *Error {
	return New(ErrCodeConfiguration, message, opts...)
}

// AgentNotFound creates an error for a configured service without an agent.
func AgentNotFound(service string, opts ...Option) *Error {
	opts = append([]Option{WithService(service)}, opts...)
	return New(ErrCodeAgentNotFound, "no service agent matches", opts...)
}

// AmbiguousAgent creates an error for a service matched by several agents.
func AmbiguousAgent(service string, candidates []string, opts ...Option) *Error {
	opts = append([]Option{WithService(service)}, opts...)
	return New(ErrCodeAmbiguousAgent, fmt.Sprintf("multiple service agents match: %v", candidates), opts...)
}

// InvalidArgument creates an error for an omitted or unusable argument.
func InvalidArgument(name string, opts ...Option) *Error {
	opts = append([]Option{WithMetadata("argument", name)}, opts...)
	return New(ErrCodeInvalidArgument, fmt.Sprintf("%s cannot be nil", name), opts...)
}

// AlreadyRegistered creates an error for a service declared twice.
func AlreadyRegistered(service string, opts ...Option) *Error {
	opts = append([]Option{WithService(service)}, opts...)
	return New(ErrCodeAlreadyRegistered, "service agent already registered", opts...)
}

// Internal creates an internal error.
func Internal(message string, opts ...Option) *Error {
	return New(ErrCodeInternal, message, opts...)
}

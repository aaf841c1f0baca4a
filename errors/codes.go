package errors

// ErrorCode identifies specific failure types.
type ErrorCode string

// Error codes for registration and settings failures.
const (
	ErrCodeConfiguration     ErrorCode = "CONFIGURATION"      // Settings source or field is missing or malformed
	ErrCodeAgentNotFound     ErrorCode = "AGENT_NOT_FOUND"    // No implementation for a configured service
	ErrCodeAmbiguousAgent    ErrorCode = "AMBIGUOUS_AGENT"    // Several implementations match a service
	ErrCodeInvalidArgument   ErrorCode = "INVALID_ARGUMENT"   // Required argument omitted
	ErrCodeAlreadyRegistered ErrorCode = "ALREADY_REGISTERED" // Service already present in the container
	ErrCodeInternal          ErrorCode = "INTERNAL"           // Unexpected internal error
	ErrCodePanic             ErrorCode = "PANIC"              // Recovered from panic
)

// String returns the string representation of the error code.
func (c ErrorCode) String() string {
	return string(c)
}

var codeDescriptions = map[ErrorCode]string{
	ErrCodeConfiguration:     "invalid service agent configuration",
	ErrCodeAgentNotFound:     "service agent not found",
	ErrCodeAmbiguousAgent:    "ambiguous service agent",
	ErrCodeInvalidArgument:   "invalid argument",
	ErrCodeAlreadyRegistered: "service agent already registered",
	ErrCodeInternal:          "internal error",
	ErrCodePanic:             "recovered from panic",
}

// Description returns a human-readable description for the error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// Package errors provides the structured error taxonomy used while loading
// service agent settings and registering agents into a container.
//
// # Error Codes
//
// Every failure surfaces synchronously during application startup and
// carries one of these codes:
//
//   - CONFIGURATION: missing or malformed settings source or fields
//   - AGENT_NOT_FOUND: configured service with no matching implementation
//   - AMBIGUOUS_AGENT: more than one implementation matches a service
//   - INVALID_ARGUMENT: a required setup callback was omitted
//   - ALREADY_REGISTERED: the service was registered in the container before
//   - INTERNAL / PANIC: unexpected failures, including recovered panics
//
// # Usage
//
// Create a new error:
//
//	err := errors.Configuration("url is required", errors.WithService("OrderAgent"))
//
// Wrap an existing error with context:
//
//	wrapped := errors.WrapWithCode(err, errors.ErrCodeConfiguration, "reading settings file")
//
// Check the code anywhere in the chain:
//
//	if errors.Is(err, errors.ErrCodeAgentNotFound) {
//	    // the catalog has no agent for a configured service
//	}
package errors

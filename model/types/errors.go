package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the error taxonomy. Callers detect conditions via
// errors.Is instead of string comparisons.
var (
	// ErrConfiguration indicates a required action parameter is missing or
	// empty. It is returned synchronously by action constructors and never
	// travels through a future.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrPayload indicates a payload that could not be read, parsed or
	// validated before any remote call was issued.
	ErrPayload = errors.New("payload corrupt")

	// ErrConnectionRefused indicates the remote endpoint actively refused
	// the connection.
	ErrConnectionRefused = errors.New("connection refused")

	// ErrConnection indicates any other failure to establish a connection.
	ErrConnection = errors.New("connection failed")

	// ErrRemoteOperation indicates the remote service reported a failure for
	// a specific call; delivered asynchronously through a future's errback.
	ErrRemoteOperation = errors.New("remote operation failed")

	// ErrDomain indicates a composite operation's precondition failed.
	ErrDomain = errors.New("operation failed")
)

// NewConfigurationError reports a missing required action parameter.
func NewConfigurationError(parameter string) error {
	return fmt.Errorf("%w: please specify %s", ErrConfiguration, parameter)
}

// NewPayloadError wraps a read/parse/validation failure of a local payload.
func NewPayloadError(source string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrPayload, source, cause)
}

// NewConnectionRefusedError reports an actively refused connection.
func NewConnectionRefusedError(host string, port int) error {
	return fmt.Errorf("%w: %s:%d", ErrConnectionRefused, host, port)
}

// NewConnectionError reports any other connection establishment failure.
func NewConnectionError(host string, port int, cause error) error {
	return fmt.Errorf("%w: %s:%d: %v", ErrConnection, host, port, cause)
}

// NewRemoteError wraps a failure reported by the remote service for the named
// operation.
func NewRemoteError(operation string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrRemoteOperation, operation, cause)
}

// NewDomainError reports a failed precondition of a composite operation.
func NewDomainError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrDomain, fmt.Sprintf(format, args...))
}

package common

import "fmt"

// ConfigurationError is returned when a Manager is built with a network
// name that is not supported.
type ConfigurationError struct {
	Network string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for network '%s': %s", e.Network, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// RemoteCallError is returned when an inspection or a transaction is
// reported by the node as failed. Message is the status error reported
// by the node.
type RemoteCallError struct {
	Operation string
	Message   string
}

func (e *RemoteCallError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed", e.Operation)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// InvariantViolation is returned when a successful response does not have
// the shape the Move package guarantees, e.g. a missing creation event.
type InvariantViolation struct {
	Operation string
	Detail    string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("%s: unexpected response: %s", e.Operation, e.Detail)
}

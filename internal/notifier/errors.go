package notifier

import "fmt"

// MissingConfigurationError is returned when no destination webhook URL is configured.
type MissingConfigurationError struct{}

func (m *MissingConfigurationError) Error() string {
	return "no destination webhook URL configured"
}

// TransportError wraps any failure to deliver the message, including non-success responses from the destination.
type TransportError struct {
	Cause error
}

func (m *TransportError) Error() string {
	return fmt.Sprintf("failed to deliver notification: %v", m.Cause)
}

func (m *TransportError) Unwrap() error {
	return m.Cause
}

package handler

import (
	"fmt"

	"github.com/isometry/sonar-slack-bridge/internal/notifier"
	"github.com/pkg/errors"
)

// Outcome labels used in logs and metrics.
const (
	OutcomeSuccess             = "success"
	OutcomeNoBody              = "no_body"
	OutcomeInvalidJSON         = "invalid_json"
	OutcomeNoDestinationConfig = "no_destination_config"
	OutcomeTransportFailure    = "transport_failure"
	OutcomeUnknown             = "unknown"
)

// MissingBodyError is returned when the inbound event carries no body.
type MissingBodyError struct{}

func (m *MissingBodyError) Error() string {
	return "no body in event"
}

// InvalidJSONError is returned when the inbound body cannot be read as a JSON document.
type InvalidJSONError struct {
	Cause error
}

func (m *InvalidJSONError) Error() string {
	return fmt.Sprintf("invalid JSON body: %v", m.Cause)
}

func (m *InvalidJSONError) Unwrap() error {
	return m.Cause
}

// Outcome classifies a processing error into its outcome label.
func Outcome(err error) string {
	var (
		noBody      *MissingBodyError
		invalidJSON *InvalidJSONError
		noConfig    *notifier.MissingConfigurationError
		transport   *notifier.TransportError
	)
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &noBody):
		return OutcomeNoBody
	case errors.As(err, &invalidJSON):
		return OutcomeInvalidJSON
	case errors.As(err, &noConfig):
		return OutcomeNoDestinationConfig
	case errors.As(err, &transport):
		return OutcomeTransportFailure
	default:
		return OutcomeUnknown
	}
}

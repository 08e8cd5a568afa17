package notify

import "fmt"

// IntegrationError is a failure while talking to an external service. It
// is logged for operators and never surfaced to the API caller, since the
// completion record has already been persisted by the time delivery runs.
type IntegrationError struct {
	Message string
	Err     error
}

func (e *IntegrationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}

	return e.Message
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}

func newIntegrationError(message string, err error) *IntegrationError {
	return &IntegrationError{Message: message, Err: err}
}

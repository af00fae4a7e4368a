package api

import (
	"errors"
	"fmt"
)

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response. Message is whatever human readable text
// the backend put in the body, possibly empty.
type StatusError struct {
	Op      string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
}

// MalformedResponseError is a 2xx response whose body cannot be used.
type MalformedResponseError struct {
	Op      string
	Message string
}

func (e *MalformedResponseError) Error() string { return fmt.Sprintf("%s: %s", e.Op, e.Message) }

const connectionErrorMessage = "Connection error"

// UserMessage converts an error returned by Client into the text shown to the user.
func UserMessage(err error, fallback string) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Message != "" {
			return statusErr.Message
		}
		return fallback
	}

	var malformedErr *MalformedResponseError
	if errors.As(err, &malformedErr) {
		return malformedErr.Message
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return connectionErrorMessage
	}

	return fallback
}

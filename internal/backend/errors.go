package backend

import (
	"errors"
	"fmt"
)

// NetworkError means no usable response arrived (connection failure, timeout,
// cancelled context). It is surfaced verbatim with a retry affordance and is
// never retried automatically.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("no response from server: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError means the backend rejected the credentials and the single
// refresh-and-retry either was not possible or also failed. The session is no
// longer usable.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "authentication failed"
}

// ServerError is a non-2xx response with a body. Message carries the
// backend-provided message when one was present.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

package internal

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnsupportedAction = errors.New("unsupported action")
	ErrInvalidKey        = errors.New("invalid signing key")
	ErrTransport         = errors.New("transport error")
)

// MissingFieldError reports the first mandatory field found empty.
type MissingFieldError struct {
	Name string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing input param: %s", e.Name)
}

// RemoteFailureError is a well-formed gateway response without the expected
// success marker.
type RemoteFailureError struct {
	Message string
}

func (e *RemoteFailureError) Error() string {
	if e.Message == "" {
		return "remote failure"
	}
	return fmt.Sprintf("remote failure: %s", e.Message)
}

// TransportError wraps a network or timeout failure of the transport.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// IsValidationError reports whether err was raised before any network call.
func IsValidationError(err error) bool {
	var missing *MissingFieldError
	return errors.As(err, &missing) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrUnsupportedAction) ||
		errors.Is(err, ErrInvalidKey)
}

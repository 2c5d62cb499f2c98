package collector

import (
	"errors"
	"fmt"
)

// FallbackMessage is shown when the backend fails without saying why.
const FallbackMessage = "request failed"

// TransportError is a network or HTTP-level failure.
type TransportError struct {
	StatusCode int    // 0 when no response arrived
	Status     string // e.g. "502 Bad Gateway"
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("%s: %s: %v", FallbackMessage, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", FallbackMessage, e.Err)
	default:
		return fmt.Sprintf("%s: %s", FallbackMessage, e.Status)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// ApplicationError is a failure signalled inside the envelope (code >= 400),
// whatever the HTTP status was.
type ApplicationError struct {
	Code    int
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return FallbackMessage
	}
	return e.Message
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsApplication reports whether err is (or wraps) an ApplicationError.
func IsApplication(err error) bool {
	var ae *ApplicationError
	return errors.As(err, &ae)
}

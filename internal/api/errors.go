package api

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is wrapped by a TransportError when a response body
// cannot be decoded.
var ErrMalformedResponse = errors.New("malformed response")

// TransportError reports a fault below the API level: the server could not be
// reached, or it answered with something that is not a notes API response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is, or wraps, a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

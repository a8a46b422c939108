package session

import (
	"errors"
	"fmt"
)

// Kind classifies controller failures.
type Kind string

const (
	KindAuth       Kind = "auth"
	KindFetch      Kind = "fetch"
	KindMutation   Kind = "mutation"
	KindTransport  Kind = "transport"
	KindValidation Kind = "validation"
)

// ErrNotFound is wrapped when a note is neither loaded nor known to the server.
var ErrNotFound = errors.New("note not found")

// Error is returned by every failing controller operation. Message is the
// text that was shown to the user.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Op, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s (%s): %s", e.Op, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a controller Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

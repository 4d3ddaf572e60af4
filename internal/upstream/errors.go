package upstream

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a fetch failure and controls whether it is retried.
type ErrorKind int

const (
	// Permanent failures are never retried: not-found, malformed requests or
	// responses, unexpected status codes, and transport errors.
	Permanent ErrorKind = iota
	// Transient failures are retried with backoff: upstream internal server
	// errors (HTTP 500).
	Transient
)

func (k ErrorKind) String() string {
	switch k {
	case Transient:
		return "transient"
	default:
		return "permanent"
	}
}

// Error is the failure type carried through every layer of the gateway.
// The Fetcher is the only layer that distinguishes kinds; everything above it
// propagates the first Error encountered and aborts.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewPermanent returns a Permanent Error with the given message and optional cause.
func NewPermanent(message string, cause error) *Error {
	return &Error{Kind: Permanent, Message: message, Err: cause}
}

// NewTransient returns a Transient Error with the given message.
func NewTransient(message string) *Error {
	return &Error{Kind: Transient, Message: message}
}

// IsPermanent reports whether err is an upstream Error of kind Permanent.
func IsPermanent(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == Permanent
}

// IsTransient reports whether err is an upstream Error of kind Transient.
func IsTransient(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == Transient
}

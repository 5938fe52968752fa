package types

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes a domain failure. Handlers map kinds to HTTP statuses;
// the core raises them synchronously and never retries.
type ErrorKind string

const (
	KIND_INVALID_WINDOW     ErrorKind = "invalid_window"
	KIND_NOT_FOUND          ErrorKind = "not_found"
	KIND_CONFLICT           ErrorKind = "conflict"
	KIND_INVALID_TRANSITION ErrorKind = "invalid_transition"
	KIND_UNAUTHORIZED       ErrorKind = "unauthorized"
	KIND_PAYLOAD_INVALID    ErrorKind = "payload_invalid"
)

// Sentinels for errors.Is checks against a DomainError of the matching kind.
var (
	ErrInvalidWindow     = &DomainError{Kind: KIND_INVALID_WINDOW}
	ErrNotFound          = &DomainError{Kind: KIND_NOT_FOUND}
	ErrConflict          = &DomainError{Kind: KIND_CONFLICT}
	ErrInvalidTransition = &DomainError{Kind: KIND_INVALID_TRANSITION}
	ErrUnauthorized      = &DomainError{Kind: KIND_UNAUTHORIZED}
	ErrPayloadInvalid    = &DomainError{Kind: KIND_PAYLOAD_INVALID}
)

type DomainError struct {
	Kind ErrorKind
	Msg  string
}

func (e *DomainError) Error() string {
	if e.Msg == "" {
		return string(e.Kind)
	}
	return e.Msg
}

func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func NewInvalidWindow(format string, args ...any) error {
	return &DomainError{Kind: KIND_INVALID_WINDOW, Msg: fmt.Sprintf(format, args...)}
}

func NewNotFound(format string, args ...any) error {
	return &DomainError{Kind: KIND_NOT_FOUND, Msg: fmt.Sprintf(format, args...)}
}

func NewConflict(format string, args ...any) error {
	return &DomainError{Kind: KIND_CONFLICT, Msg: fmt.Sprintf(format, args...)}
}

func NewInvalidTransition(format string, args ...any) error {
	return &DomainError{Kind: KIND_INVALID_TRANSITION, Msg: fmt.Sprintf(format, args...)}
}

func NewUnauthorized(format string, args ...any) error {
	return &DomainError{Kind: KIND_UNAUTHORIZED, Msg: fmt.Sprintf(format, args...)}
}

func NewPayloadInvalid(format string, args ...any) error {
	return &DomainError{Kind: KIND_PAYLOAD_INVALID, Msg: fmt.Sprintf(format, args...)}
}

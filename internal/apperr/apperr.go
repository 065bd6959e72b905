// Package apperr defines the error taxonomy shared by all layers.
// Services wrap failures in one of the sentinel kinds; handlers map
// the kind to an HTTP status.
package apperr

import "errors"

// Sentinel error kinds.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failure")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("upstream failure")
)

// Error carries a user-visible message tagged with one of the sentinel kinds.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Is reports whether the error belongs to the given sentinel kind,
// so callers can use errors.Is(err, apperr.ErrConflict).
func (e *Error) Is(target error) bool { return target == e.kind }

// Unauthorized returns an authentication failure with the given message.
func Unauthorized(msg string) error { return &Error{kind: ErrUnauthorized, msg: msg} }

// Validation returns a validation failure with the given message.
func Validation(msg string) error { return &Error{kind: ErrValidation, msg: msg} }

// Conflict returns a conflict failure with the given message.
func Conflict(msg string) error { return &Error{kind: ErrConflict, msg: msg} }

// NotFound returns a not-found failure with the given message.
func NotFound(msg string) error { return &Error{kind: ErrNotFound, msg: msg} }

// Upstream returns an external-provider failure with the given message.
func Upstream(msg string) error { return &Error{kind: ErrUpstream, msg: msg} }

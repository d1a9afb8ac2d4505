package model

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a draft operation wraps exactly one of these
// so callers can classify it with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("state conflict")
	ErrNotFound     = errors.New("not found")
	ErrInconsistent = errors.New("data inconsistency")
)

// Error carries a user facing message along with its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func Inconsistentf(format string, args ...any) error {
	return &Error{Kind: ErrInconsistent, Message: fmt.Sprintf(format, args...)}
}

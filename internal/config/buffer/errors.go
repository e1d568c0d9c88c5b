package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations.
var (
	// ErrInvalidValue indicates a line was rejected by the setting validator.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnreadableBind indicates a bound file could not be read and no
	// content was available to fall back on.
	ErrUnreadableBind = errors.New("unreadable bind source")
)

// InvalidValueError describes a value rejected by a validator.
type InvalidValueError struct {
	// Value is the offending text.
	Value string
	// Reason is the validator error.
	Reason error
}

// Error implements the error interface.
func (e *InvalidValueError) Error() string {
	if e.Reason == nil {
		return fmt.Sprintf("invalid value %q", e.Value)
	}
	return fmt.Sprintf("invalid value %q: %v", e.Value, e.Reason)
}

// Unwrap returns the validator error.
func (e *InvalidValueError) Unwrap() error {
	return e.Reason
}

// Is implements error matching for InvalidValueError.
func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// BindError is returned when a bound file cannot be read.
type BindError struct {
	// Path is the bound file path.
	Path string
	// Err is the underlying I/O error.
	Err error
}

// Error implements the error interface.
func (e *BindError) Error() string {
	return fmt.Sprintf("cannot bind to %s%s: %v", AddressPrefix, e.Path, e.Err)
}

// Unwrap returns the I/O error.
func (e *BindError) Unwrap() error {
	return e.Err
}

// Is implements error matching for BindError.
func (e *BindError) Is(target error) bool {
	return target == ErrUnreadableBind
}

func errUnknownKind(k Kind) error {
	return fmt.Errorf("unknown buffer kind %d", k)
}

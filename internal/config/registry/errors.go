package registry

import (
	"errors"
	"fmt"

	"github.com/dshills/backchannel/internal/config/buffer"
)

// Errors returned by registry operations.
var (
	// ErrIllegalName indicates a name fails the identifier pattern or
	// matches no declared or dynamic setting.
	ErrIllegalName = errors.New("illegal name")

	// ErrSchemaLoad indicates a malformed descriptor table.
	ErrSchemaLoad = errors.New("schema load failure")

	// ErrNotSet indicates the setting holds no value.
	ErrNotSet = errors.New("setting not set")

	// ErrInvalidValue indicates a value rejected by the setting validator.
	ErrInvalidValue = buffer.ErrInvalidValue

	// ErrUnreadableBind indicates a bind address could not be read and no
	// fallback content exists.
	ErrUnreadableBind = buffer.ErrUnreadableBind
)

// NameError describes an illegal setting name.
type NameError struct {
	// Name is the normalized name.
	Name string
	// Unknown is set when the name is well formed but matches no setting.
	Unknown bool
}

// Error implements the error interface.
func (e *NameError) Error() string {
	if e.Unknown {
		return fmt.Sprintf("illegal name: '%s' (no such setting)", e.Name)
	}
	return fmt.Sprintf("illegal name: '%s'", e.Name)
}

// Is implements error matching for NameError.
func (e *NameError) Is(target error) bool {
	return target == ErrIllegalName
}

// SchemaError describes a malformed descriptor.
type SchemaError struct {
	// Name is the descriptor name (may be empty).
	Name string
	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("descriptor %q: %s", e.Name, e.Message)
}

// Is implements error matching for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchemaLoad
}

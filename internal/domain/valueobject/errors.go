package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	// ErrApplicationNotFound is returned when a requested application id has
	// no matching record.
	ErrApplicationNotFound = errors.New("requested application not found")

	// ErrUnknownEnumValue is returned when an enum name cannot be resolved.
	ErrUnknownEnumValue = errors.New("unknown enum value")

	// ErrVersionConflict is returned when saving an application loses an
	// optimistic-lock race against a concurrent writer.
	ErrVersionConflict = errors.New("application was modified concurrently")
)

// MissingFieldError reports that an application reached the calculation step
// without a field the scoring request requires. It signals a process fault
// upstream (registration skipped), not a user input error.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("scoring data is incomplete: missing %s", e.Field)
}

// IsMissingField reports whether err is a MissingFieldError.
func IsMissingField(err error) bool {
	var mfe MissingFieldError
	return errors.As(err, &mfe)
}

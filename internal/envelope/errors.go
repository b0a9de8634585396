package envelope

import (
	"errors"
	"fmt"
)

// ErrInvalidEnvelope is matched by every *ValidationError.
var ErrInvalidEnvelope = errors.New("invalid envelope")

// ValidationError reports the first field that failed its variant's schema.
type ValidationError struct {
	Type   Type
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	t := string(e.Type)
	if t == "" {
		t = "unknown"
	}

	if e.Field == "" {
		return fmt.Sprintf("invalid %s envelope: %s", t, e.Reason)
	}

	return fmt.Sprintf("invalid %s envelope: %s: %s", t, e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidEnvelope) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidEnvelope
}

func invalid(t Type, field, format string, args ...any) *ValidationError {
	return &ValidationError{Type: t, Field: field, Reason: fmt.Sprintf(format, args...)}
}

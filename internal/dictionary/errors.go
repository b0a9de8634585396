package dictionary

import (
	"errors"
	"fmt"
)

// ErrContractViolation is matched by every *ContractViolation.
var ErrContractViolation = errors.New("dictionary contract violation")

// ContractViolation reports why a dictionary was rejected.
type ContractViolation struct {
	// DictionaryID of the rejected dictionary (may be empty if it was missing).
	DictionaryID string
	// Location is the slash-separated branch path of the offending node.
	Location string
	// Reason is the human-readable cause.
	Reason string
}

func (e *ContractViolation) Error() string {
	id := e.DictionaryID
	if id == "" {
		id = "<unnamed>"
	}

	if e.Location != "" {
		return fmt.Sprintf("dictionary %s: %s: %s", id, e.Location, e.Reason)
	}

	return fmt.Sprintf("dictionary %s: %s", id, e.Reason)
}

// Is makes errors.Is(err, ErrContractViolation) hold.
func (e *ContractViolation) Is(target error) bool {
	return target == ErrContractViolation
}

func violation(dictID, location, format string, args ...any) *ContractViolation {
	return &ContractViolation{
		DictionaryID: dictID,
		Location:     location,
		Reason:       fmt.Sprintf(format, args...),
	}
}

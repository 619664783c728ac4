package timer

import (
	"errors"
	"fmt"

	"github.com/balkashynov/taskmaster/internal/models"
)

// ErrInvalidState matches every InvalidStateError via errors.Is.
var ErrInvalidState = errors.New("invalid state")

// InvalidStateError reports an operation attempted on a slot whose state
// does not allow it.
type InvalidStateError struct {
	Op     string
	Status models.SlotStatus
	Reason string
}

func (e *InvalidStateError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s slot in status %q: %s", e.Op, e.Status, e.Reason)
	}
	return fmt.Sprintf("cannot %s slot in status %q", e.Op, e.Status)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

func invalidState(op string, slot models.Slot, reason string) error {
	return &InvalidStateError{Op: op, Status: slot.Status, Reason: reason}
}

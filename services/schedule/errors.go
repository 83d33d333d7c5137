package schedule

import (
	"errors"
	"fmt"
)

// SlotTakenError reports that a requested slot is held by a different client.
// It is a user-facing rejection, never fatal.
type SlotTakenError struct {
	Date string
	Slot string
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("slot %s on %s is already taken", e.Slot, e.Date)
}

// IsSlotTaken reports whether err is a slot-exclusivity rejection.
func IsSlotTaken(err error) bool {
	var target *SlotTakenError
	return errors.As(err, &target)
}

package schedule

import (
	"context"

	"agendabot/models"
)

// SchedulingService books, reschedules and cancels slots, and derives the
// open slots for a date. The engine, not any previously computed
// availability list, is the source of truth for conflicts.
type SchedulingService interface {
	// RequestBooking applies the booking policy: a slot held by another
	// client is rejected with *SlotTakenError; a client with an existing
	// confirmed booking that day has it moved to the requested slot.
	RequestBooking(ctx context.Context, date, slot, clientName, contact string) (*models.BookingResult, error)
	// CancelBooking soft-cancels the client's confirmed booking on date.
	// It reports false when there was nothing to cancel.
	CancelBooking(ctx context.Context, date, clientName string) (bool, error)
	// AvailableSlots returns the open slots for date inside the current
	// business-hours window, ascending.
	AvailableSlots(ctx context.Context, date string) ([]string, error)
}

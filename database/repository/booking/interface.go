package bookingRepo

import (
	"context"

	"agendabot/models"
)

// BookingRepository is the durable table of bookings. Lookups that find
// nothing return (nil, nil); errors are reserved for store failures.
type BookingRepository interface {
	// FindConfirmed returns the confirmed booking holding (date, slot).
	FindConfirmed(ctx context.Context, date, slot string) (*models.Booking, error)
	// FindConfirmedByClient returns the client's confirmed booking on date,
	// matched by normalized client key regardless of slot.
	FindConfirmedByClient(ctx context.Context, date, clientKey string) (*models.Booking, error)
	Insert(ctx context.Context, booking *models.Booking) (string, error)
	UpdateSlotAndContact(ctx context.Context, bookingID, newSlot, newContact string) error
	SetStatus(ctx context.Context, bookingID string, status models.BookingStatus) error
	// ListConfirmed returns the confirmed bookings for date ordered by slot.
	ListConfirmed(ctx context.Context, date string) ([]models.Booking, error)
	// ListFrom returns all bookings with date >= the given date, ordered by
	// date then slot.
	ListFrom(ctx context.Context, date string) ([]models.Booking, error)
	// CountConfirmed returns the number of confirmed bookings for date.
	CountConfirmed(ctx context.Context, date string) (int, error)
}

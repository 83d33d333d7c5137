package bookingRepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"agendabot/models"
)

// memoryBookingRepo keeps bookings in process memory. Used by tests and by
// local runs without a MongoDB instance.
type memoryBookingRepo struct {
	mu       sync.Mutex
	bookings []*models.Booking
}

// NewMemoryBookingRepo constructs an in-memory BookingRepository.
func NewMemoryBookingRepo() BookingRepository {
	return &memoryBookingRepo{}
}

func (r *memoryBookingRepo) FindConfirmed(ctx context.Context, date, slot string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.Date == date && b.Slot == slot && b.Status == models.BookingStatusConfirmed {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryBookingRepo) FindConfirmedByClient(ctx context.Context, date, clientKey string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.Date == date && models.ClientKey(b.ClientName) == clientKey && b.Status == models.BookingStatusConfirmed {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryBookingRepo) Insert(ctx context.Context, booking *models.Booking) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *booking
	r.bookings = append(r.bookings, &copied)
	return booking.ID, nil
}

func (r *memoryBookingRepo) UpdateSlotAndContact(ctx context.Context, bookingID, newSlot, newContact string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == bookingID {
			b.Slot = newSlot
			b.Contact = newContact
			return nil
		}
	}
	return fmt.Errorf("booking %s not found", bookingID)
}

func (r *memoryBookingRepo) SetStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == bookingID {
			b.Status = status
			return nil
		}
	}
	return fmt.Errorf("booking %s not found", bookingID)
}

func (r *memoryBookingRepo) ListConfirmed(ctx context.Context, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Date == date && b.Status == models.BookingStatusConfirmed {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

func (r *memoryBookingRepo) ListFrom(ctx context.Context, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Date >= date {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Slot < out[j].Slot
	})
	return out, nil
}

func (r *memoryBookingRepo) CountConfirmed(ctx context.Context, date string) (int, error) {
	bookings, err := r.ListConfirmed(ctx, date)
	if err != nil {
		return 0, err
	}
	return len(bookings), nil
}

package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "agendabot/database/repository/booking"
	settingsRepo "agendabot/database/repository/settings"
	"agendabot/models"
)

// DefaultSchedulingService enforces slot exclusivity and the rebooking
// policy on top of the booking repository.
type DefaultSchedulingService struct {
	Repo     bookingRepo.BookingRepository
	Settings settingsRepo.Typed

	// Serializes the lookup-then-write section so the admin API and the
	// chat pipeline cannot race each other into a double booking. Write
	// volume is a handful per hour; one mutex is enough.
	mu sync.Mutex
}

func (s *DefaultSchedulingService) RequestBooking(ctx context.Context, date, slot, clientName, contact string) (*models.BookingResult, error) {
	clientKey := models.ClientKey(clientName)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Exclusivity first: a precise "taken by someone else" answer before the
	// requester's own history is considered.
	holder, err := s.Repo.FindConfirmed(ctx, date, slot)
	if err != nil {
		return nil, fmt.Errorf("look up slot holder: %w", err)
	}
	if holder != nil && models.ClientKey(holder.ClientName) != clientKey {
		return nil, &SlotTakenError{Date: date, Slot: slot}
	}

	// The client's most recent request wins: an existing booking that day is
	// moved, never duplicated. A repeat of the same slot rewrites in place.
	existing, err := s.Repo.FindConfirmedByClient(ctx, date, clientKey)
	if err != nil {
		return nil, fmt.Errorf("look up client booking: %w", err)
	}
	if existing != nil {
		if err := s.Repo.UpdateSlotAndContact(ctx, existing.ID, slot, contact); err != nil {
			return nil, fmt.Errorf("reschedule booking: %w", err)
		}
		zap.L().Info("booking rescheduled",
			zap.String("client", clientName),
			zap.String("date", date),
			zap.String("from", existing.Slot),
			zap.String("to", slot))

		updated := *existing
		updated.Slot = slot
		updated.Contact = contact
		return &models.BookingResult{
			Booking:  &updated,
			Kind:     models.BookingKindRescheduled,
			FromSlot: existing.Slot,
		}, nil
	}

	booking := &models.Booking{
		ID:         uuid.New().String(),
		Date:       date,
		Slot:       slot,
		ClientName: clientName,
		Contact:    contact,
		Status:     models.BookingStatusConfirmed,
		CreatedAt:  time.Now(),
	}
	if _, err := s.Repo.Insert(ctx, booking); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	zap.L().Info("booking created",
		zap.String("client", clientName),
		zap.String("date", date),
		zap.String("slot", slot))

	return &models.BookingResult{Booking: booking, Kind: models.BookingKindNew}, nil
}

// CancelBooking transitions the client's confirmed booking on date to
// Cancelled. History is kept; a later request from the same client is a
// fresh booking, not an un-cancel.
func (s *DefaultSchedulingService) CancelBooking(ctx context.Context, date, clientName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.Repo.FindConfirmedByClient(ctx, date, models.ClientKey(clientName))
	if err != nil {
		return false, fmt.Errorf("look up client booking: %w", err)
	}
	if existing == nil {
		return false, nil
	}
	if err := s.Repo.SetStatus(ctx, existing.ID, models.BookingStatusCancelled); err != nil {
		return false, fmt.Errorf("cancel booking: %w", err)
	}
	zap.L().Info("booking cancelled",
		zap.String("client", clientName),
		zap.String("date", date),
		zap.String("slot", existing.Slot))
	return true, nil
}

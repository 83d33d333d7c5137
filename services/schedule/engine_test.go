package schedule_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "agendabot/database/repository/booking"
	settingsRepo "agendabot/database/repository/settings"
	"agendabot/models"
	"agendabot/services/schedule"
)

func newService(t *testing.T) (*schedule.DefaultSchedulingService, settingsRepo.SettingsRepository) {
	t.Helper()
	settings := settingsRepo.NewMemorySettingsRepo()
	svc := &schedule.DefaultSchedulingService{
		Repo:     bookingRepo.NewMemoryBookingRepo(),
		Settings: settingsRepo.Typed{Repo: settings},
	}
	return svc, settings
}

func TestRequestBooking_SlotExclusivity(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	result, err := svc.RequestBooking(ctx, "2025-06-01", "10:00", "Ana", "555-0001")
	require.NoError(t, err)
	assert.Equal(t, models.BookingKindNew, result.Kind)

	_, err = svc.RequestBooking(ctx, "2025-06-01", "10:00", "Bob", "555-0002")
	require.Error(t, err)
	assert.True(t, schedule.IsSlotTaken(err))

	// The same slot on another date is unaffected.
	result, err = svc.RequestBooking(ctx, "2025-06-02", "10:00", "Bob", "555-0002")
	require.NoError(t, err)
	assert.Equal(t, models.BookingKindNew, result.Kind)
}

func TestRequestBooking_RescheduleNotDuplicate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	first, err := svc.RequestBooking(ctx, "2025-06-01", "10:00", "Ana", "555-0001")
	require.NoError(t, err)

	second, err := svc.RequestBooking(ctx, "2025-06-01", "11:00", "Ana", "555-0001")
	require.NoError(t, err)
	assert.Equal(t, models.BookingKindRescheduled, second.Kind)
	assert.Equal(t, "10:00", second.FromSlot)
	assert.Equal(t, first.Booking.ID, second.Booking.ID)

	confirmed, err := svc.Repo.ListConfirmed(ctx, "2025-06-01")
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, "11:00", confirmed[0].Slot)
}

func TestRequestBooking_IdempotentRepeat(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.RequestBooking(ctx, "2025-06-01", "10:00", "Ana", "555-0001")
	require.NoError(t, err)

	repeat, err := svc.RequestBooking(ctx, "2025-06-01", "10:00", "Ana", "555-0001")
	require.NoError(t, err)
	assert.Equal(t, models.BookingKindRescheduled, repeat.Kind)
	assert.Equal(t, "10:00", repeat.FromSlot)

	confirmed, err := svc.Repo.ListConfirmed(ctx, "2025-06-01")
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, "10:00", confirmed[0].Slot)
}

func TestRequestBooking_ClientIdentityIsNormalized(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.RequestBooking(ctx, "2025-06-01", "10:00", "ana", "x")
	require.NoError(t, err)

	// Same client, different casing and trailing space: rescheduled, not
	// rejected and not duplicated.
	result, err := svc.RequestBooking(ctx, "2025-06-01", "11:00", "ANA ", "y")
	require.NoError(t, err)
	assert.Equal(t, models.BookingKindRescheduled, result.Kind)

	confirmed, err := svc.Repo.ListConfirmed(ctx, "2025-06-01")
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, "ana", confirmed[0].ClientName) // original casing kept
	assert.Equal(t, "y", confirmed[0].Contact)
}

func TestRequestBooking_SameClientHoldingRequestedSlot(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.RequestBooking(ctx, "2025-06-01", "10:00", "Ana", "x")
	require.NoError(t, err)

	// Ana asks for the exact slot she already holds, only cased differently:
	// treated as a no-op confirmation, never SlotTaken.
	result, err := svc.RequestBooking(ctx, "2025-06-01", "10:00", "ANA", "x")
	require.NoError(t, err)
	assert.Equal(t, models.BookingKindRescheduled, result.Kind)
}

func TestCancelBooking(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	cancelled, err := svc.CancelBooking(ctx, "2025-06-01", "Ana")
	require.NoError(t, err)
	assert.False(t, cancelled, "cancelling a non-existent booking reports false")

	_, err = svc.RequestBooking(ctx, "2025-06-01", "10:00", "Ana", "x")
	require.NoError(t, err)

	cancelled, err = svc.CancelBooking(ctx, "2025-06-01", "ana ")
	require.NoError(t, err)
	assert.True(t, cancelled)

	confirmed, err := svc.Repo.ListConfirmed(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.Empty(t, confirmed)

	// History is kept, not deleted.
	all, err := svc.Repo.ListFrom(ctx, "2025-06-01")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.BookingStatusCancelled, all[0].Status)

	// A new request after cancellation is a fresh booking.
	result, err := svc.RequestBooking(ctx, "2025-06-01", "10:00", "Ana", "x")
	require.NoError(t, err)
	assert.Equal(t, models.BookingKindNew, result.Kind)
}

package schedule_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	settingsRepo "agendabot/database/repository/settings"
	"agendabot/services/schedule"
)

func TestOpenSlots(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		end      int
		taken    []string
		expected []string
	}{
		{
			name:     "full window",
			start:    9,
			end:      11,
			expected: []string{"09:00", "10:00", "11:00"},
		},
		{
			name:     "taken slots excluded",
			start:    9,
			end:      11,
			taken:    []string{"10:00"},
			expected: []string{"09:00", "11:00"},
		},
		{
			name:     "single-hour window",
			start:    14,
			end:      14,
			expected: []string{"14:00"},
		},
		{
			name:     "inverted window yields nothing",
			start:    18,
			end:      9,
			expected: nil,
		},
		{
			name:     "out-of-range hours skipped",
			start:    -2,
			end:      1,
			expected: []string{"00:00", "01:00"},
		},
		{
			name:     "everything taken",
			start:    9,
			end:      10,
			taken:    []string{"09:00", "10:00"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schedule.OpenSlots(tt.start, tt.end, tt.taken))
		})
	}
}

func TestAvailableSlots_RoundTrip(t *testing.T) {
	svc, settings := newService(t)
	ctx := context.Background()

	require.NoError(t, settings.Set(ctx, settingsRepo.KeyBusinessHoursStart, "9"))
	require.NoError(t, settings.Set(ctx, settingsRepo.KeyBusinessHoursEnd, "11"))

	slots, err := svc.AvailableSlots(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slots)

	_, err = svc.RequestBooking(ctx, "2025-06-01", "10:00", "Ana", "x")
	require.NoError(t, err)

	slots, err = svc.AvailableSlots(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "11:00"}, slots)

	// Availability never contains a confirmed slot.
	confirmed, err := svc.Repo.ListConfirmed(ctx, "2025-06-01")
	require.NoError(t, err)
	for _, b := range confirmed {
		assert.NotContains(t, slots, b.Slot)
	}

	// Cancelling frees the slot on the next computation.
	cancelled, err := svc.CancelBooking(ctx, "2025-06-01", "Ana")
	require.NoError(t, err)
	require.True(t, cancelled)

	slots, err = svc.AvailableSlots(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slots)
}

func TestAvailableSlots_ReadsHoursFresh(t *testing.T) {
	svc, settings := newService(t)
	ctx := context.Background()

	require.NoError(t, settings.Set(ctx, settingsRepo.KeyBusinessHoursStart, "9"))
	require.NoError(t, settings.Set(ctx, settingsRepo.KeyBusinessHoursEnd, "10"))

	slots, err := svc.AvailableSlots(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, slots)

	// Hours changed by the admin panel take effect on the next call.
	require.NoError(t, settings.Set(ctx, settingsRepo.KeyBusinessHoursEnd, "12"))

	slots, err = svc.AvailableSlots(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00"}, slots)
}

package schedule

import (
	"context"
	"fmt"
)

// OpenSlots enumerates every hourly slot from startHour to endHour inclusive
// and removes the taken ones. Pure and total: an empty or inverted window
// yields an empty list.
func OpenSlots(startHour, endHour int, taken []string) []string {
	occupied := make(map[string]bool, len(taken))
	for _, slot := range taken {
		occupied[slot] = true
	}

	var open []string
	for h := startHour; h <= endHour; h++ {
		if h < 0 || h > 23 {
			continue
		}
		slot := fmt.Sprintf("%02d:00", h)
		if !occupied[slot] {
			open = append(open, slot)
		}
	}
	return open
}

// AvailableSlots reads the business hours and the day's confirmed bookings
// fresh and computes the open slots. No caching: both inputs change between
// calls, and callers must treat the result as a snapshot anyway.
func (s *DefaultSchedulingService) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	start, end := s.Settings.BusinessHours(ctx)

	confirmed, err := s.Repo.ListConfirmed(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list confirmed bookings: %w", err)
	}
	taken := make([]string, len(confirmed))
	for i, b := range confirmed {
		taken[i] = b.Slot
	}
	return OpenSlots(start, end, taken), nil
}

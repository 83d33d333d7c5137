package models

import (
	"fmt"
	"strings"
	"time"
)

// ClientKey normalizes a display name for identity comparisons. Bookings
// store the name verbatim; every lookup goes through this key.
func ClientKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BookingStatus is the closed set of booking lifecycle states.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// ParseBookingStatus decodes a stored status value. Unknown values are an
// error, never silently compared as free text.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingStatusConfirmed, BookingStatusCancelled:
		return BookingStatus(s), nil
	}
	return "", fmt.Errorf("unrecognized booking status %q", s)
}

// Booking represents one appointment row.
type Booking struct {
	ID         string        `bson:"id" json:"id"`                  // Unique booking identifier (UUID)
	Date       string        `bson:"date" json:"date"`              // Booking date in "YYYY-MM-DD" format
	Slot       string        `bson:"slot" json:"slot"`              // Slot start in "HH:MM" 24h format
	ClientName string        `bson:"client_name" json:"clientName"` // Display name as the client gave it
	Contact    string        `bson:"contact" json:"contact"`        // Phone number, or "WhatsApp"/"Manual" sentinel
	Status     BookingStatus `bson:"status" json:"status"`
	CreatedAt  time.Time     `bson:"created_at" json:"createdAt"`
}

// BookingKind distinguishes a fresh booking from a moved one.
type BookingKind string

const (
	BookingKindNew         BookingKind = "new"
	BookingKindRescheduled BookingKind = "rescheduled"
)

// BookingResult is the outcome of a booking request that was not rejected.
type BookingResult struct {
	Booking  *Booking    `json:"booking"`
	Kind     BookingKind `json:"kind"`
	FromSlot string      `json:"fromSlot,omitempty"` // Previous slot when Kind is rescheduled
}

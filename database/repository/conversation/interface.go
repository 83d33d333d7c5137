package conversationRepo

import (
	"context"
	"time"

	"agendabot/models"
)

// ConversationRepository is the append-only chat ledger: one active
// conversation per client plus the ordered message history behind it.
// Messages are never mutated or deleted.
type ConversationRepository interface {
	// ActiveConversation returns the client's active conversation, creating
	// one when none exists.
	ActiveConversation(ctx context.Context, clientName string) (*models.Conversation, error)
	// AppendMessage records a message in the client's active conversation and
	// bumps its last-activity timestamp.
	AppendMessage(ctx context.Context, clientName, content string, isAgent bool) error
	// History returns up to limit most recent messages for the client in
	// chronological order.
	History(ctx context.Context, clientName string, limit int) ([]models.Message, error)
	// MarkBookingConfirmed closes the client's active conversation with
	// bookingConfirmed set. The transition is one-way.
	MarkBookingConfirmed(ctx context.Context, clientName string) error
	// HasConfirmedBooking reports whether the client's active conversation
	// already carries a confirmed booking.
	HasConfirmedBooking(ctx context.Context, clientName string) (bool, error)
	// ListRecent returns conversations ordered by last activity, newest first.
	ListRecent(ctx context.Context, limit int) ([]models.Conversation, error)
	CountActive(ctx context.Context) (int, error)
	CountMessagesSince(ctx context.Context, since time.Time) (int, error)
}

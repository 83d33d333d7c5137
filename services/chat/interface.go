package chat

import (
	"context"

	"agendabot/models"
)

// TextGenerator produces the conversational reply for an inbound message.
// It is an opaque collaborator: the pipeline only contracts that a reply may
// carry at most one booking directive.
type TextGenerator interface {
	GenerateReply(ctx context.Context, rc models.ReplyContext) (string, error)
}

// ReminderScheduler queues an appointment reminder for a confirmed booking.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, booking models.Booking) error
}

// ChatService runs the inbound-message pipeline from dedup through reply
// rewriting.
type ChatService interface {
	HandleInbound(ctx context.Context, msg models.InboundMessage) (*models.ChatOutcome, error)
	// MarkDelivered is called by the transport after the reply reached the
	// client.
	MarkDelivered(clientName, content string)
}

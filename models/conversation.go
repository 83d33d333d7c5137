package models

import (
	"fmt"
	"time"
)

// ConversationState is the closed set of conversation states.
type ConversationState string

const (
	ConversationActive ConversationState = "active"
	ConversationClosed ConversationState = "closed"
)

// ParseConversationState decodes a stored state value.
func ParseConversationState(s string) (ConversationState, error) {
	switch ConversationState(s) {
	case ConversationActive, ConversationClosed:
		return ConversationState(s), nil
	}
	return "", fmt.Errorf("unrecognized conversation state %q", s)
}

// Conversation is the logical chat session with one client. At most one
// active conversation exists per client; closing happens only when a booking
// is confirmed inside it and is one-way.
type Conversation struct {
	ID               string            `bson:"id" json:"id"`
	ClientName       string            `bson:"client_name" json:"clientName"`
	State            ConversationState `bson:"state" json:"state"`
	LastActivity     time.Time         `bson:"last_activity" json:"lastActivity"`
	BookingConfirmed bool              `bson:"booking_confirmed" json:"bookingConfirmed"`
}

// Message is one entry of the append-only per-client chat history.
type Message struct {
	ID             string    `bson:"id" json:"id"`
	ConversationID string    `bson:"conversation_id" json:"conversationId"`
	ClientName     string    `bson:"client_name" json:"clientName"`
	IsAgent        bool      `bson:"is_agent" json:"isAgent"` // true for the bot's own replies
	Content        string    `bson:"content" json:"content"`
	Timestamp      time.Time `bson:"timestamp" json:"timestamp"`
}

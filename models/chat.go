package models

// InboundMessage is what the chat transport hands to the pipeline for one
// received message. SelfEcho marks content the transport attributes to the
// bot's own prior outbound message.
type InboundMessage struct {
	ClientName string `json:"clientName"`
	Content    string `json:"content"`
	SelfEcho   bool   `json:"selfEcho"`
}

// ChatOutcome is what the pipeline returns to the transport for delivery.
type ChatOutcome struct {
	Reply     string `json:"reply"`               // Final text to deliver, possibly rewritten
	Booked    bool   `json:"booked"`              // A booking was confirmed by this message
	Duplicate bool   `json:"duplicate"`           // Message was dropped by the dedup guard
	Skipped   bool   `json:"skipped"`             // Bot disabled or client on the ignore list
	Date      string `json:"date,omitempty"`      // Booked date when Booked
	Slot      string `json:"slot,omitempty"`      // Booked slot when Booked
}

// ReplyContext is the situational input handed to the text generator. The
// generator is an opaque collaborator; this struct is the whole contract.
type ReplyContext struct {
	BusinessName   string
	Instructions   string
	ClientName     string
	Weekday        string
	Today          string   // "YYYY-MM-DD"
	Now            string   // "HH:MM"
	AvailableToday []string // Open slots for today, ascending
	History        []Message
	Message        string // The inbound message being answered
}

// Stats are the aggregate counters shown on the admin panel. Reads backing
// them are non-critical and degrade to zero.
type Stats struct {
	BookingsToday       int `json:"bookingsToday"`
	MessagesToday       int `json:"messagesToday"`
	ActiveConversations int `json:"activeConversations"`
}

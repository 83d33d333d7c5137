package responder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agendabot/models"
)

func TestFallbackResponder_Intents(t *testing.T) {
	rc := models.ReplyContext{
		BusinessName:   "Fade Factory",
		Instructions:   "Haircut $10",
		ClientName:     "Ana",
		Weekday:        "Monday",
		AvailableToday: []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00"},
	}
	var r FallbackResponder

	tests := []struct {
		name     string
		message  string
		contains string
	}{
		{"greeting", "Hola!", "Hi Ana!"},
		{"greeting english", "hey there", "Welcome to Fade Factory"},
		{"price", "how much is a haircut?", "Haircut $10"},
		{"hours", "when do you open?", "Monday"},
		{"booking lists slots", "can I book an appointment?", "09:00, 10:00, 11:00, 12:00, 13:00"},
		{"spanish booking", "quiero agendar una cita", "Which works for you?"},
		{"location", "where are you located?", "Google Maps"},
		{"unknown falls through", "asdf qwerty", "Fade Factory assistant"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc.Message = tt.message
			assert.Contains(t, r.GenerateReply(rc), tt.contains)
		})
	}
}

func TestFallbackResponder_BookingWhenFull(t *testing.T) {
	var r FallbackResponder
	reply := r.GenerateReply(models.ReplyContext{Message: "any slot available?"})
	assert.Contains(t, reply, "fully booked")
}

func TestFallbackResponder_AtMostFiveSlotsShown(t *testing.T) {
	var r FallbackResponder
	reply := r.GenerateReply(models.ReplyContext{
		Message:        "book me in",
		AvailableToday: []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00"},
	})
	assert.NotContains(t, reply, "14:00")
}

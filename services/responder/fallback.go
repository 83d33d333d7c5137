package responder

import (
	"fmt"
	"strings"

	"agendabot/models"
)

// intentKeywords maps a reply bucket to the keywords that trigger it.
// Checked in order; first hit wins.
var intentKeywords = []struct {
	intent   string
	keywords []string
}{
	{"greeting", []string{"hola", "hello", "hi", "hey", "good morning", "good afternoon", "buenas", "buenos dias"}},
	{"price", []string{"price", "cost", "how much", "charge", "precio", "cuanto"}},
	{"hours", []string{"hours", "open", "close", "schedule", "horario", "abren"}},
	{"booking", []string{"book", "appointment", "reserve", "slot", "available", "cita", "turno", "agendar"}},
	{"location", []string{"where", "address", "location", "directions", "donde", "direccion"}},
}

// FallbackResponder produces a canned reply without any external text
// generator. Used when no API key is configured or every model failed.
type FallbackResponder struct{}

func (FallbackResponder) GenerateReply(rc models.ReplyContext) string {
	lower := strings.ToLower(rc.Message)

	for _, bucket := range intentKeywords {
		for _, kw := range bucket.keywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			switch bucket.intent {
			case "greeting":
				return fmt.Sprintf("Hi %s! Welcome to %s. How can I help? Prices, hours, or booking an appointment?",
					rc.ClientName, rc.BusinessName)
			case "price":
				return fmt.Sprintf("Our prices: %s. Would you like to book an appointment?", rc.Instructions)
			case "hours":
				return fmt.Sprintf("Today is %s. Would you like me to book you in?", rc.Weekday)
			case "booking":
				if len(rc.AvailableToday) > 0 {
					shown := rc.AvailableToday
					if len(shown) > 5 {
						shown = shown[:5]
					}
					return fmt.Sprintf("For today we have: %s. Which works for you?", strings.Join(shown, ", "))
				}
				return "We're fully booked today. Shall I book you for tomorrow?"
			case "location":
				return "You can find us at our registered address. Look us up on Google Maps or call for directions."
			}
		}
	}

	return fmt.Sprintf("Hi! I'm the %s assistant. I can help with prices, open slots, or booking an appointment. What do you need?",
		rc.BusinessName)
}

package chat

import (
	"strings"
	"time"
)

// directiveMarker opens the machine-readable booking instruction the text
// generator embeds in an otherwise free-text reply:
//
//	<free text>[BOOK: YYYY-MM-DD HH:MM]
const directiveMarker = "[BOOK:"

// Directive is a parsed booking instruction.
type Directive struct {
	Date string // "YYYY-MM-DD"
	Slot string // "HH:MM"
}

// ExtractDirective scans a generated reply for a single booking directive.
// On success it returns the directive, the reply text preceding the marker
// (trimmed), and true. A missing marker and a malformed directive are
// indistinguishable: both return the original text unchanged and false.
// Never errors.
func ExtractDirective(reply string) (Directive, string, bool) {
	idx := strings.Index(reply, directiveMarker)
	if idx < 0 {
		return Directive{}, reply, false
	}

	rest := reply[idx+len(directiveMarker):]
	end := strings.Index(rest, "]")
	if end < 0 {
		return Directive{}, reply, false
	}

	fields := strings.Fields(rest[:end])
	if len(fields) != 2 {
		return Directive{}, reply, false
	}
	date, slot := fields[0], fields[1]
	if !validDate(date) || !validSlot(slot) {
		return Directive{}, reply, false
	}

	stripped := strings.TrimSpace(reply[:idx])
	return Directive{Date: date, Slot: slot}, stripped, true
}

func validDate(s string) bool {
	if len(s) != len("2006-01-02") {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validSlot(s string) bool {
	if len(s) != len("15:04") {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

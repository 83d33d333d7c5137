package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDirective(t *testing.T) {
	tests := []struct {
		name          string
		reply         string
		wantDirective Directive
		wantStripped  string
		wantOK        bool
	}{
		{
			name:          "directive at end",
			reply:         "Listo! [BOOK: 2025-12-12 15:00]",
			wantDirective: Directive{Date: "2025-12-12", Slot: "15:00"},
			wantStripped:  "Listo!",
			wantOK:        true,
		},
		{
			name:          "directive with trailing text removed",
			reply:         "Perfect, see you then! [BOOK: 2025-06-01 09:00] anything after",
			wantDirective: Directive{Date: "2025-06-01", Slot: "09:00"},
			wantStripped:  "Perfect, see you then!",
			wantOK:        true,
		},
		{
			name:          "directive only",
			reply:         "[BOOK: 2025-06-01 09:00]",
			wantDirective: Directive{Date: "2025-06-01", Slot: "09:00"},
			wantStripped:  "",
			wantOK:        true,
		},
		{
			name:         "no marker",
			reply:        "Hola! We open at 9am.",
			wantStripped: "Hola! We open at 9am.",
		},
		{
			name:         "malformed date",
			reply:        "[BOOK: not-a-date bad]",
			wantStripped: "[BOOK: not-a-date bad]",
		},
		{
			name:         "impossible date",
			reply:        "Done [BOOK: 2025-13-45 10:00]",
			wantStripped: "Done [BOOK: 2025-13-45 10:00]",
		},
		{
			name:         "malformed time",
			reply:        "Done [BOOK: 2025-06-01 25:99]",
			wantStripped: "Done [BOOK: 2025-06-01 25:99]",
		},
		{
			name:         "missing closing bracket",
			reply:        "Done [BOOK: 2025-06-01 10:00",
			wantStripped: "Done [BOOK: 2025-06-01 10:00",
		},
		{
			name:         "missing time token",
			reply:        "Done [BOOK: 2025-06-01]",
			wantStripped: "Done [BOOK: 2025-06-01]",
		},
		{
			name:         "empty reply",
			reply:        "",
			wantStripped: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			directive, stripped, ok := ExtractDirective(tt.reply)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDirective, directive)
			assert.Equal(t, tt.wantStripped, stripped)
		})
	}
}

package settingsRepo

import "context"

// Well-known settings keys. Values are stored as strings; typed access with
// defaults goes through Typed.
const (
	KeyBusinessHoursStart = "businessHoursStart"
	KeyBusinessHoursEnd   = "businessHoursEnd"
	KeyBotEnabled         = "botEnabled"
	KeyIgnoredClients     = "ignoredClients" // JSON array of display names
	KeyBusinessName       = "businessName"
	KeyInstructions       = "instructions"
)

// Defaults applied when a key has no stored value. A missing key is never an
// error.
var Defaults = map[string]string{
	KeyBusinessHoursStart: "9",
	KeyBusinessHoursEnd:   "20",
	KeyBotEnabled:         "true",
	KeyIgnoredClients:     "[]",
	KeyBusinessName:       "Barbershop",
	KeyInstructions:       "Hours: 9am-8pm. Haircut $10. Beard trim $5.",
}

// SettingsRepository is the flat key-value store behind runtime business
// configuration. Values are read fresh on every call; nothing is cached.
type SettingsRepository interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}

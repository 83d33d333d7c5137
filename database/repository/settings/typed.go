package settingsRepo

import (
	"context"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"
)

// Typed reads well-known settings with their documented defaults. Store
// failures on these paths degrade to the default and log; business settings
// reads are never fatal.
type Typed struct {
	Repo SettingsRepository
}

func (t Typed) get(ctx context.Context, key string) string {
	value, ok, err := t.Repo.Get(ctx, key)
	if err != nil {
		zap.L().Warn("settings read failed, using default", zap.String("key", key), zap.Error(err))
		return Defaults[key]
	}
	if !ok {
		return Defaults[key]
	}
	return value
}

// BusinessHours returns the inclusive first and last bookable hour of a day.
func (t Typed) BusinessHours(ctx context.Context) (int, int) {
	start, err := strconv.Atoi(t.get(ctx, KeyBusinessHoursStart))
	if err != nil {
		start, _ = strconv.Atoi(Defaults[KeyBusinessHoursStart])
	}
	end, err := strconv.Atoi(t.get(ctx, KeyBusinessHoursEnd))
	if err != nil {
		end, _ = strconv.Atoi(Defaults[KeyBusinessHoursEnd])
	}
	return start, end
}

func (t Typed) BotEnabled(ctx context.Context) bool {
	return t.get(ctx, KeyBotEnabled) != "false"
}

func (t Typed) IgnoredClients(ctx context.Context) []string {
	var names []string
	if err := json.Unmarshal([]byte(t.get(ctx, KeyIgnoredClients)), &names); err != nil {
		return nil
	}
	return names
}

func (t Typed) BusinessName(ctx context.Context) string {
	return t.get(ctx, KeyBusinessName)
}

func (t Typed) Instructions(ctx context.Context) string {
	return t.get(ctx, KeyInstructions)
}

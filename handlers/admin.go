package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "agendabot/database/repository/booking"
	conversationRepo "agendabot/database/repository/conversation"
	settingsRepo "agendabot/database/repository/settings"
	"agendabot/models"
)

// AdminHandler serves the panel's stats and runtime configuration.
type AdminHandler struct {
	Settings     settingsRepo.SettingsRepository
	BookingRepo  bookingRepo.BookingRepository
	Conversation conversationRepo.ConversationRepository
	Logger       *zap.Logger
}

func NewAdminHandler(settings settingsRepo.SettingsRepository, bookings bookingRepo.BookingRepository, conversations conversationRepo.ConversationRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		Settings:     settings,
		BookingRepo:  bookings,
		Conversation: conversations,
		Logger:       logger,
	}
}

// Stats returns today's aggregate counters. Each read is non-critical and
// degrades to zero on a store failure.
func (h *AdminHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now()
	today := now.Format("2006-01-02")
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var stats models.Stats
	var err error

	if stats.BookingsToday, err = h.BookingRepo.CountConfirmed(ctx, today); err != nil {
		h.Logger.Warn("stats: bookings count failed", zap.Error(err))
	}
	if stats.MessagesToday, err = h.Conversation.CountMessagesSince(ctx, midnight); err != nil {
		h.Logger.Warn("stats: messages count failed", zap.Error(err))
	}
	if stats.ActiveConversations, err = h.Conversation.CountActive(ctx); err != nil {
		h.Logger.Warn("stats: conversations count failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, stats)
}

// GetConfig returns the runtime settings, filling unset keys with their
// documented defaults.
func (h *AdminHandler) GetConfig(c *gin.Context) {
	stored, err := h.Settings.All(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to read settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read settings"})
		return
	}

	merged := make(map[string]string, len(settingsRepo.Defaults)+len(stored))
	for k, v := range settingsRepo.Defaults {
		merged[k] = v
	}
	for k, v := range stored {
		merged[k] = v
	}
	c.JSON(http.StatusOK, merged)
}

// UpdateConfig writes the provided key-value pairs.
func (h *AdminHandler) UpdateConfig(c *gin.Context) {
	var input map[string]string
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	for key, value := range input {
		if err := h.Settings.Set(ctx, key, value); err != nil {
			h.Logger.Error("failed to write setting", zap.String("key", key), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write setting", "key": key})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"updated": len(input)})
}

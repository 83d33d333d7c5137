package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	conversationRepo "agendabot/database/repository/conversation"
)

const (
	recentConversationLimit = 50
	messageHistoryLimit     = 100
)

// ConversationHandler exposes the chat ledger to the admin panel.
type ConversationHandler struct {
	Repo   conversationRepo.ConversationRepository
	Logger *zap.Logger
}

func NewConversationHandler(repo conversationRepo.ConversationRepository, logger *zap.Logger) *ConversationHandler {
	return &ConversationHandler{Repo: repo, Logger: logger}
}

// ListConversations returns the most recently active conversations.
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	conversations, err := h.Repo.ListRecent(c.Request.Context(), recentConversationLimit)
	if err != nil {
		h.Logger.Error("failed to list conversations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list conversations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// Messages returns a client's message history in chronological order.
func (h *ConversationHandler) Messages(c *gin.Context) {
	client := c.Param("client")
	if client == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client is required"})
		return
	}

	messages, err := h.Repo.History(c.Request.Context(), client, messageHistoryLimit)
	if err != nil {
		h.Logger.Error("failed to load history", zap.String("client", client), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client, "messages": messages})
}

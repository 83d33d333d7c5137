package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agendabot/models"
	"agendabot/services/chat"
)

// ChatHandler is the endpoint the chat transport collaborator calls with
// scraped inbound messages.
type ChatHandler struct {
	Service chat.ChatService
	Logger  *zap.Logger
}

func NewChatHandler(service chat.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Service: service, Logger: logger}
}

// Inbound runs one message through the pipeline and returns the reply the
// transport should deliver.
func (h *ChatHandler) Inbound(c *gin.Context) {
	var msg models.InboundMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if msg.ClientName == "" || msg.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "clientName and content are required"})
		return
	}

	outcome, err := h.Service.HandleInbound(c.Request.Context(), msg)
	if err != nil {
		h.Logger.Error("pipeline failed", zap.String("client", msg.ClientName), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// Ack records that the transport delivered the reply for a message, locking
// its dedup fingerprint in.
func (h *ChatHandler) Ack(c *gin.Context) {
	var input struct {
		ClientName string `json:"clientName" binding:"required"`
		Content    string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	h.Service.MarkDelivered(input.ClientName, input.Content)
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"agendabot/utils"
)

const adminTokenTTL = 12 * time.Hour

// AuthHandler issues admin session tokens.
type AuthHandler struct {
	Secret       []byte
	PasswordHash string // bcrypt hash from configuration
}

func NewAuthHandler(secret []byte, passwordHash string) *AuthHandler {
	return &AuthHandler{Secret: secret, PasswordHash: passwordHash}
}

// Login checks the admin password and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if h.PasswordHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin access is not configured"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(input.Password)); err != nil {
		zap.L().Warn("admin login rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	token, err := utils.GenerateToken(h.Secret, "admin", adminTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

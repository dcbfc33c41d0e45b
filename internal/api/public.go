package api

import (
	"errors"
	"net/http"
	"strconv"

	"partnerhub/internal/chatbot"
	"partnerhub/internal/health"
	"partnerhub/internal/site"
	wire "partnerhub/pkg/models"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated helpers used by the public
// site.
type PublicHandler struct {
	Health     health.Report
	Bot        chatbot.Bot
	SelfNumber string
}

func NewPublicHandler(report health.Report, bot chatbot.Bot, selfNumber string) *PublicHandler {
	return &PublicHandler{Health: report, Bot: bot, SelfNumber: selfNumber}
}

// GetHealth answers the plain-text health line the console parses.
func (h *PublicHandler) GetHealth(c *gin.Context) {
	c.String(http.StatusOK, h.Health.String())
}

func (h *PublicHandler) GetChatbotNode(c *gin.Context) {
	node, err := h.Bot.Lookup(chatbot.Intent(c.Param("intent")))
	if err != nil {
		if errors.Is(err, chatbot.ErrUnknownIntent) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": wire.CodeNotFound})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, node)
}

// GetWhatsAppQR renders the click-to-chat link for ?text= as a PNG.
func (h *PublicHandler) GetWhatsAppQR(c *gin.Context) {
	text := c.DefaultQuery("text", site.DefaultGreeting)
	size := 256
	if s := c.Query("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 64 || n > 1024 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be between 64 and 1024", "code": wire.CodeInvalidInput})
			return
		}
		size = n
	}

	png, err := site.WhatsAppQR(h.SelfNumber, text, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

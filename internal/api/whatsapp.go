package api

import (
	"net/http"

	"partnerhub/internal/service"
	wire "partnerhub/pkg/models"

	"github.com/gin-gonic/gin"
)

// WhatsAppHandler serves the Meta credentials, the integration probes and
// webhook verification.
type WhatsAppHandler struct {
	Service *service.Service
}

func NewWhatsAppHandler(svc *service.Service) *WhatsAppHandler {
	return &WhatsAppHandler{Service: svc}
}

func (h *WhatsAppHandler) GetConfig(c *gin.Context) {
	cfg, err := h.Service.GetMetaApiConfig(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *WhatsAppHandler) UpdateConfig(c *gin.Context) {
	var req wire.MetaApiConfig
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.UpdateMetaApiConfig(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	ok(c)
}

// GetAccountDetails answers null while the credentials are incomplete.
func (h *WhatsAppHandler) GetAccountDetails(c *gin.Context) {
	details, err := h.Service.GetWhatsAppAccountDetails(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *WhatsAppHandler) GetIntegrationStatus(c *gin.Context) {
	status, err := h.Service.GetWhatsAppIntegrationStatus(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *WhatsAppHandler) GetTokenStatus(c *gin.Context) {
	status, err := h.Service.GetWhatsAppTokenStatus(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *WhatsAppHandler) GetPhoneNumberStatus(c *gin.Context) {
	status, err := h.Service.HasAtLeastOnePhoneNumberAttached(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// VerifyWebhook runs the Meta handshake from a JSON body, for tools that
// cannot issue the GET form.
func (h *WhatsAppHandler) VerifyWebhook(c *gin.Context) {
	var req wire.MetaWebhookVerificationRequest
	if !bindJSON(c, &req) {
		return
	}
	outcome, err := h.Service.VerifyMetaWebhook(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func (h *WhatsAppHandler) GetWebhookStats(c *gin.Context) {
	stats, err := h.Service.GetWebhookVerificationStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

package api

import (
	"net/http"

	"partnerhub/internal/service"
	wire "partnerhub/pkg/models"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the message log and both send paths.
type DashboardHandler struct {
	Service *service.Service
}

func NewDashboardHandler(svc *service.Service) *DashboardHandler {
	return &DashboardHandler{Service: svc}
}

func (h *DashboardHandler) GetMessages(c *gin.Context) {
	messages, err := h.Service.ListMessages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if messages == nil {
		messages = []wire.WhatsAppMessage{}
	}
	c.JSON(http.StatusOK, messages)
}

// SendMessage records a message in the local log without calling Meta.
func (h *DashboardHandler) SendMessage(c *gin.Context) {
	var req wire.LocalSendRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.SendLocal(c.Request.Context(), req.Sender, req.Recipient, req.Content); err != nil {
		respondError(c, err)
		return
	}
	ok(c)
}

// SendViaAPI delivers through the Graph API. An unapproved recipient is
// answered with 422 and code recipient_not_approved.
func (h *DashboardHandler) SendViaAPI(c *gin.Context) {
	var req wire.MessagePayload
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Service.SendViaAPI(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

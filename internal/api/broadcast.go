package api

import (
	"net/http"

	"partnerhub/internal/service"
	wire "partnerhub/pkg/models"

	"github.com/gin-gonic/gin"
)

// BroadcastHandler serves message templates and their schedules.
type BroadcastHandler struct {
	Service *service.Service
}

func NewBroadcastHandler(svc *service.Service) *BroadcastHandler {
	return &BroadcastHandler{Service: svc}
}

func (h *BroadcastHandler) GetTemplates(c *gin.Context) {
	templates, err := h.Service.ListTemplates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if templates == nil {
		templates = []wire.WhatsAppTemplate{}
	}
	c.JSON(http.StatusOK, templates)
}

func (h *BroadcastHandler) GetTemplate(c *gin.Context) {
	var req wire.IDRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.Service.GetTemplate(c.Request.Context(), req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *BroadcastHandler) CreateTemplate(c *gin.Context) {
	var req wire.TemplateInput
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.Service.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.CreatedResponse{ID: id})
}

func (h *BroadcastHandler) UpdateTemplate(c *gin.Context) {
	var req wire.TemplateUpdateInput
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.UpdateTemplate(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	ok(c)
}

func (h *BroadcastHandler) DeleteTemplate(c *gin.Context) {
	var req wire.IDRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.DeleteTemplate(c.Request.Context(), req.ID); err != nil {
		respondError(c, err)
		return
	}
	ok(c)
}

// GetTemplatesFromMeta lists the templates registered with the business
// account.
func (h *BroadcastHandler) GetTemplatesFromMeta(c *gin.Context) {
	templates, err := h.Service.ListMetaTemplates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if templates == nil {
		templates = []wire.ExternalWhatsAppTemplate{}
	}
	c.JSON(http.StatusOK, templates)
}

func (h *BroadcastHandler) ScheduleMessage(c *gin.Context) {
	var req wire.ScheduleRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.Service.ScheduleMessage(c.Request.Context(), req.TemplateID, req.RecipientPhoneNumber, req.ScheduleType, req.RunAtTimestamp)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c)
}

// Schedules returns a handler listing schedules of typ, or all when typ
// is empty.
func (h *BroadcastHandler) Schedules(typ wire.ScheduleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		schedules, err := h.Service.ListSchedules(c.Request.Context(), typ)
		if err != nil {
			respondError(c, err)
			return
		}
		if schedules == nil {
			schedules = []wire.Schedule{}
		}
		c.JSON(http.StatusOK, schedules)
	}
}

func (h *BroadcastHandler) GetSchedule(c *gin.Context) {
	var req wire.IDRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Service.GetSchedule(c.Request.Context(), req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *BroadcastHandler) DeleteSchedule(c *gin.Context) {
	var req wire.IDRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.DeleteSchedule(c.Request.Context(), req.ID); err != nil {
		respondError(c, err)
		return
	}
	ok(c)
}

package api

import (
	"net/http"
	"strings"

	"partnerhub/internal/service"
	wire "partnerhub/pkg/models"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves caller profiles, roles and the editable site
// content.
type AccountHandler struct {
	Service *service.Service
}

func NewAccountHandler(svc *service.Service) *AccountHandler {
	return &AccountHandler{Service: svc}
}

func (h *AccountHandler) GetCallerProfile(c *gin.Context) {
	p, err := h.Service.GetCallerUserProfile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *AccountHandler) SaveCallerProfile(c *gin.Context) {
	var req wire.UserProfile
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.SaveCallerUserProfile(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	ok(c)
}

func (h *AccountHandler) GetUserProfile(c *gin.Context) {
	var req wire.UserRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Service.GetUserProfile(c.Request.Context(), req.User)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *AccountHandler) GetCallerRole(c *gin.Context) {
	role, err := h.Service.CallerRole(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

func (h *AccountHandler) IsCallerAdmin(c *gin.Context) {
	admin, err := h.Service.IsCallerAdmin(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (h *AccountHandler) AssignRole(c *gin.Context) {
	var req wire.AssignRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	token, err := h.Service.AssignUserRole(c.Request.Context(), req.User, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.PrincipalTokenResponse{Principal: strings.TrimSpace(req.User), Token: token})
}

func (h *AccountHandler) GetFAQs(c *gin.Context) {
	faqs, err := h.Service.ListFAQs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if faqs == nil {
		faqs = []wire.FAQ{}
	}
	c.JSON(http.StatusOK, faqs)
}

func (h *AccountHandler) AddFAQ(c *gin.Context) {
	var req wire.FAQRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.AddFAQ(c.Request.Context(), req.ID, req.Question, req.Answer); err != nil {
		respondError(c, err)
		return
	}
	ok(c)
}

func (h *AccountHandler) GetBenefits(c *gin.Context) {
	benefits, err := h.Service.ListPartnerBenefits(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if benefits == nil {
		benefits = []wire.PartnerBenefit{}
	}
	c.JSON(http.StatusOK, benefits)
}

func (h *AccountHandler) AddBenefit(c *gin.Context) {
	var req wire.PartnerBenefitRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.AddPartnerBenefit(c.Request.Context(), req.ID, req.Title, req.Description); err != nil {
		respondError(c, err)
		return
	}
	ok(c)
}

func (h *AccountHandler) GetOfficeContact(c *gin.Context) {
	d, err := h.Service.OfficeContact(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *AccountHandler) UpdateOfficeContact(c *gin.Context) {
	var req wire.OfficeContactData
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.UpdateOfficeContact(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	ok(c)
}

func (h *AccountHandler) GetOnboardingRequirements(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.OnboardingRequirements(c.Request.Context()))
}

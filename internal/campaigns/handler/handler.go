// Package handler exposes campaign management over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tune_outbound_backend/internal/campaigns/service"
	"tune_outbound_backend/internal/campaigns/transport"
	"tune_outbound_backend/platform/httpkit"
	"tune_outbound_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid campaign id"
)

// Handler handles HTTP requests for campaigns.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new campaigns handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create registers a new campaign.
// POST /api/v1/campaigns
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	campaign, err := h.svc.Create(c.Request.Context(), req.Name, req.Industry)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, campaign)
}

// Get returns a campaign with its current totals.
// GET /api/v1/campaigns/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	overview, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, overview)
}

// List returns all campaigns.
// GET /api/v1/campaigns
func (h *Handler) List(c *gin.Context) {
	campaigns, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, campaigns)
}

// ProspectsByTier returns a campaign's prospects in one tier.
// GET /api/v1/campaigns/:id/prospects/:tier
func (h *Handler) ProspectsByTier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	prospects, err := h.svc.ProspectsByTier(c.Request.Context(), id, c.Param("tier"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, prospects)
}

// Analytics returns the campaign's aggregated performance view.
// GET /api/v1/campaigns/:id/analytics
func (h *Handler) Analytics(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	analytics, err := h.svc.Analytics(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, analytics)
}

// UpdateStatus moves a campaign through its lifecycle.
// PATCH /api/v1/campaigns/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	if err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"status": req.Status})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}

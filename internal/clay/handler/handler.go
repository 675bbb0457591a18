// Package handler exposes the Clay integration over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tune_outbound_backend/internal/clay/service"
	"tune_outbound_backend/internal/clay/transport"
	"tune_outbound_backend/platform/httpkit"
	"tune_outbound_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the Clay integration.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new Clay handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Sync writes a campaign's analyzed prospects into a Clay table.
// POST /api/v1/clay/sync
func (h *Handler) Sync(c *gin.Context) {
	var req transport.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	campaignID, err := uuid.Parse(req.CampaignID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign id", nil)
		return
	}

	report, err := h.svc.SyncCampaign(c.Request.Context(), req.TableID, campaignID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, report)
}

// Webhook analyzes a Clay row after enrichment finished and writes the
// scores back.
// POST /api/v1/clay/webhook
func (h *Handler) Webhook(c *gin.Context) {
	var payload service.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.HandleEnrichedRow(c.Request.Context(), payload)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

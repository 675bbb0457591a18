// Package handler exposes content generation over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tune_outbound_backend/internal/content/service"
	"tune_outbound_backend/internal/content/transport"
	"tune_outbound_backend/internal/scheduler"
	"tune_outbound_backend/platform/httpkit"
	"tune_outbound_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for content generation.
type Handler struct {
	svc   *service.Service
	queue scheduler.Enqueuer
	val   *validator.Validator
}

// New creates a new content handler. The queue may be nil; requests then
// run synchronously.
func New(svc *service.Service, queue scheduler.Enqueuer, val *validator.Validator) *Handler {
	return &Handler{svc: svc, queue: queue, val: val}
}

// GenerateSequence generates one prospect's sequence.
// POST /api/v1/content/generate-sequence
func (h *Handler) GenerateSequence(c *gin.Context) {
	var req transport.GenerateSequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	prospectID := uuid.MustParse(req.ProspectID)

	if h.queue != nil {
		jobID, err := h.queue.EnqueueGenerateSequence(c.Request.Context(), scheduler.GenerateSequencePayload{
			ProspectID: req.ProspectID,
			Mode:       req.Mode,
		})
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.Accepted(c, gin.H{"jobId": jobID, "prospectId": req.ProspectID})
		return
	}

	emails, err := h.svc.GenerateForProspect(c.Request.Context(), prospectID, transport.ModeOrDefault(req.Mode))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.SequenceResponse{ProspectID: req.ProspectID, Touches: len(emails), Emails: emails})
}

// GenerateBatch generates sequences for a whole campaign synchronously.
// POST /api/v1/content/generate-batch
func (h *Handler) GenerateBatch(c *gin.Context) {
	var req transport.GenerateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	outcomes, err := h.svc.GenerateForCampaign(c.Request.Context(),
		uuid.MustParse(req.CampaignID), transport.ModeOrDefault(req.Mode), req.Concurrency)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"campaignId": req.CampaignID, "outcomes": outcomes})
}

// LinkedInMessage generates a connection request pair.
// POST /api/v1/content/linkedin-message
func (h *Handler) LinkedInMessage(c *gin.Context) {
	var req transport.LinkedInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	persona := req.PersonaType
	if persona == "" {
		persona = "energy_manager"
	}

	msg, err := h.svc.LinkedInFor(c.Request.Context(), uuid.MustParse(req.ProspectID), persona)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, msg)
}

// Sequence returns a prospect's stored sequence.
// GET /api/v1/content/prospects/:id/sequence
func (h *Handler) Sequence(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid prospect id", nil)
		return
	}

	emails, err := h.svc.SequenceFor(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, emails)
}

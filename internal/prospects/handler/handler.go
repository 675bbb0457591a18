// Package handler exposes prospect analysis over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tune_outbound_backend/internal/prospects/service"
	"tune_outbound_backend/internal/prospects/transport"
	"tune_outbound_backend/internal/scheduler"
	"tune_outbound_backend/platform/httpkit"
	"tune_outbound_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid prospect id"
)

// Handler handles HTTP requests for prospects.
type Handler struct {
	pipeline *service.Pipeline
	queue    scheduler.Enqueuer
	val      *validator.Validator
}

// New creates a new prospects handler. The queue may be nil; batch
// requests then run synchronously.
func New(pipeline *service.Pipeline, queue scheduler.Enqueuer, val *validator.Validator) *Handler {
	return &Handler{pipeline: pipeline, queue: queue, val: val}
}

// Analyze analyzes one prospect synchronously.
// POST /api/v1/prospects/analyze
func (h *Handler) Analyze(c *gin.Context) {
	var req transport.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	campaignID, ok := parseOptionalUUID(c, req.CampaignID)
	if !ok {
		return
	}

	result, err := h.pipeline.Analyze(c.Request.Context(), campaignID, req.ProfileInput())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AnalyzeBatch enqueues a batch analysis, falling back to synchronous
// execution when no queue is configured.
// POST /api/v1/prospects/analyze-batch
func (h *Handler) AnalyzeBatch(c *gin.Context) {
	var req transport.AnalyzeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	payload := scheduler.AnalyzeBatchPayload{
		CampaignID:  req.CampaignID,
		Concurrency: req.Concurrency,
	}
	for _, p := range req.Prospects {
		payload.Prospects = append(payload.Prospects, p.ProfileInput())
	}

	if h.queue != nil {
		jobID, err := h.queue.EnqueueAnalyzeBatch(c.Request.Context(), payload)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.Accepted(c, transport.BatchAcceptedResponse{
			JobID:      jobID,
			Queued:     len(payload.Prospects),
			CampaignID: req.CampaignID,
		})
		return
	}

	campaignID, ok := parseOptionalUUID(c, req.CampaignID)
	if !ok {
		return
	}
	outcomes, err := h.pipeline.AnalyzeBatch(c.Request.Context(), campaignID, payload.Prospects, req.Concurrency)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewBatchResponse(outcomes))
}

// Get returns a stored prospect.
// GET /api/v1/prospects/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	p, err := h.pipeline.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, p)
}

func parseOptionalUUID(c *gin.Context, raw string) (uuid.UUID, bool) {
	if raw == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign id", nil)
		return uuid.Nil, false
	}
	return id, true
}

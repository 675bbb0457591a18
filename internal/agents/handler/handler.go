// Package handler exposes industry agent management over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	agents "tune_outbound_backend/internal/agents/domain"
	"tune_outbound_backend/internal/agents/service"
	"tune_outbound_backend/internal/agents/transport"
	"tune_outbound_backend/platform/httpkit"
	"tune_outbound_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for industry agents.
type Handler struct {
	builder *service.Builder
	val     *validator.Validator
}

// New creates a new agents handler.
func New(builder *service.Builder, val *validator.Validator) *Handler {
	return &Handler{builder: builder, val: val}
}

// Build builds the agent profile for an industry. Passing force rebuilds
// an existing profile from scratch.
// POST /api/v1/agents/build
func (h *Handler) Build(c *gin.Context) {
	var req transport.BuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	var (
		profile agents.Profile
		err     error
	)
	if req.Force {
		profile, err = h.builder.Build(c.Request.Context(), req.Industry)
	} else {
		profile, err = h.builder.GetOrBuild(c.Request.Context(), req.Industry)
	}
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, profile)
}

// Get returns a stored agent profile.
// GET /api/v1/agents/:industry
func (h *Handler) Get(c *gin.Context) {
	profile, err := h.builder.Get(c.Request.Context(), c.Param("industry"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, profile)
}

// Status reports whether an agent is missing, building or ready.
// GET /api/v1/agents/:industry/status
func (h *Handler) Status(c *gin.Context) {
	industry := c.Param("industry")
	status, err := h.builder.Status(c.Request.Context(), industry)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.StatusResponse{Industry: industry, Status: status})
}

// Package handler exposes collateral rendering over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tune_outbound_backend/internal/collateral/service"
	"tune_outbound_backend/internal/collateral/transport"
	"tune_outbound_backend/platform/httpkit"
	"tune_outbound_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for collateral.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new collateral handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SavingsReport renders and stores the savings report PDF for a prospect
// and returns its download link.
// POST /api/v1/collateral/savings-report
func (h *Handler) SavingsReport(c *gin.Context) {
	var req transport.SavingsReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	report, err := h.svc.RenderSavingsReport(c.Request.Context(), uuid.MustParse(req.ProspectID))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, report)
}

// Link re-presigns the download URL for an existing report.
// GET /api/v1/collateral/prospects/:id/savings-report
func (h *Handler) Link(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid prospect id", nil)
		return
	}

	report, err := h.svc.Link(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, report)
}

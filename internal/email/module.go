package email

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apphttp "tune_outbound_backend/internal/http"
	"tune_outbound_backend/platform/config"
	"tune_outbound_backend/platform/httpkit"
	"tune_outbound_backend/platform/logger"
	"tune_outbound_backend/platform/validator"
)

// SendTouchRequest delivers one generated touch to an address.
type SendTouchRequest struct {
	ProspectID  string `json:"prospect_id" validate:"required,uuid"`
	TouchNumber int    `json:"touch_number" validate:"required,min=1,max=5"`
	ToAddress   string `json:"to_address" validate:"required,email"`
}

// Module is the email delivery bounded context module.
type Module struct {
	service *Service
	val     *validator.Validator
}

// NewModule creates and initializes the email module. It fails when SMTP
// delivery is not enabled.
func NewModule(cfg config.EmailConfig, store ContentStore, val *validator.Validator, log *logger.Logger) (*Module, error) {
	sender, err := NewSender(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Module{service: NewService(sender, store, log), val: val}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "email"
}

// Service exposes the delivery service.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts the email routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.V1.Group("/email")
	g.POST("/send-touch", m.sendTouch)
}

// sendTouch delivers one stored touch.
// POST /api/v1/email/send-touch
func (m *Module) sendTouch(c *gin.Context) {
	var req SendTouchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := m.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	delivery, err := m.service.SendTouch(c.Request.Context(),
		uuid.MustParse(req.ProspectID), req.TouchNumber, req.ToAddress)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, delivery)
}

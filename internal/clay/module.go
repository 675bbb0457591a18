// Package clay provides the Clay CRM integration bounded context module.
package clay

import (
	"tune_outbound_backend/internal/clay/client"
	"tune_outbound_backend/internal/clay/handler"
	"tune_outbound_backend/internal/clay/service"
	apphttp "tune_outbound_backend/internal/http"
	"tune_outbound_backend/platform/config"
	"tune_outbound_backend/platform/logger"
	"tune_outbound_backend/platform/validator"
)

// Module is the Clay integration bounded context module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the Clay module.
func NewModule(cfg config.ClayConfig, val *validator.Validator, analyzer service.Analyzer, prospects service.ProspectLister, log *logger.Logger) *Module {
	api := client.New(cfg, log)
	svc := service.NewService(api, analyzer, prospects, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "clay"
}

// Service exposes the Clay service.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the Clay routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.V1.Group("/clay")
	g.POST("/sync", m.handler.Sync)
	g.POST("/webhook", m.handler.Webhook)
}

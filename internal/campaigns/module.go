// Package campaigns provides the campaign management bounded context module.
package campaigns

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"tune_outbound_backend/internal/campaigns/handler"
	"tune_outbound_backend/internal/campaigns/repository"
	"tune_outbound_backend/internal/campaigns/service"
	"tune_outbound_backend/internal/events"
	apphttp "tune_outbound_backend/internal/http"
	"tune_outbound_backend/platform/logger"
	"tune_outbound_backend/platform/validator"
)

// Module is the campaigns bounded context module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the campaigns module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, prospects service.ProspectLister, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.NewService(repo, prospects, bus, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "campaigns"
}

// Service exposes the campaigns service.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the campaign routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.V1.Group("/campaigns")
	g.POST("", m.handler.Create)
	g.GET("", m.handler.List)
	g.GET("/:id", m.handler.Get)
	g.GET("/:id/prospects/:tier", m.handler.ProspectsByTier)
	g.GET("/:id/analytics", m.handler.Analytics)
	g.PATCH("/:id/status", m.handler.UpdateStatus)
}

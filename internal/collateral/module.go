// Package collateral provides the PDF collateral bounded context module.
package collateral

import (
	"context"

	"tune_outbound_backend/internal/collateral/handler"
	"tune_outbound_backend/internal/collateral/service"
	"tune_outbound_backend/internal/collateral/storage"
	"tune_outbound_backend/internal/events"
	apphttp "tune_outbound_backend/internal/http"
	"tune_outbound_backend/platform/config"
	"tune_outbound_backend/platform/logger"
	"tune_outbound_backend/platform/validator"
)

// Module is the collateral bounded context module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	store   *storage.Store
}

// NewModule creates and initializes the collateral module. It fails when
// MinIO is not configured.
func NewModule(cfg config.MinIOConfig, bus events.Bus, val *validator.Validator, prospects service.ProspectSource, log *logger.Logger) (*Module, error) {
	store, err := storage.New(cfg)
	if err != nil {
		return nil, err
	}
	svc := service.NewService(prospects, store, bus, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		store:   store,
	}, nil
}

// EnsureBucket verifies the collateral bucket exists, creating it if needed.
func (m *Module) EnsureBucket(ctx context.Context) error {
	return m.store.EnsureBucket(ctx)
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "collateral"
}

// Service exposes the collateral service.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the collateral routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.V1.Group("/collateral")
	g.POST("/savings-report", m.handler.SavingsReport)
	g.GET("/prospects/:id/savings-report", m.handler.Link)
}

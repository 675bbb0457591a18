// Package content provides the content generation bounded context module.
package content

import (
	"github.com/jackc/pgx/v5/pgxpool"

	agentsvc "tune_outbound_backend/internal/agents/service"
	"tune_outbound_backend/internal/content/handler"
	"tune_outbound_backend/internal/content/repository"
	"tune_outbound_backend/internal/content/service"
	"tune_outbound_backend/internal/events"
	apphttp "tune_outbound_backend/internal/http"
	prospectsvc "tune_outbound_backend/internal/prospects/service"
	"tune_outbound_backend/internal/scheduler"
	"tune_outbound_backend/platform/ai"
	"tune_outbound_backend/platform/logger"
	"tune_outbound_backend/platform/validator"
)

// Module is the content bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the content module with all its
// dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, llm ai.TextGenerator, agentBuilder *agentsvc.Builder, pipeline *prospectsvc.Pipeline, queue scheduler.Enqueuer, log *logger.Logger) *Module {
	repo := repository.New(pool)
	gen := service.NewGenerator(llm, agentBuilder, bus, log)
	svc := service.NewService(gen, repo, pipeline, log)

	return &Module{
		handler: handler.New(svc, queue, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "content"
}

// Service exposes the content service for the worker binary.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the content routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.V1.Group("/content")
	g.POST("/generate-sequence", m.handler.GenerateSequence)
	g.POST("/generate-batch", m.handler.GenerateBatch)
	g.POST("/linkedin-message", m.handler.LinkedInMessage)
	g.GET("/prospects/:id/sequence", m.handler.Sequence)
}

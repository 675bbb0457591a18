// Package agents provides the industry agent bounded context module.
package agents

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"tune_outbound_backend/internal/agents/handler"
	"tune_outbound_backend/internal/agents/repository"
	"tune_outbound_backend/internal/agents/service"
	apphttp "tune_outbound_backend/internal/http"
	"tune_outbound_backend/platform/ai"
	"tune_outbound_backend/platform/logger"
	"tune_outbound_backend/platform/validator"
)

// Module is the industry agents bounded context module.
type Module struct {
	handler *handler.Handler
	builder *service.Builder
}

// NewModule creates and initializes the agents module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, llm ai.TextGenerator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	builder := service.NewBuilder(llm, repo, service.NewCache(), log)

	return &Module{
		handler: handler.New(builder, val),
		builder: builder,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "agents"
}

// Builder exposes the agent builder for the content generator.
func (m *Module) Builder() *service.Builder {
	return m.builder
}

// RegisterRoutes mounts the agent routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.V1.Group("/agents")
	g.POST("/build", m.handler.Build)
	g.GET("/:industry", m.handler.Get)
	g.GET("/:industry/status", m.handler.Status)
}

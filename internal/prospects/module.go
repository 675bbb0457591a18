// Package prospects provides the prospect analysis bounded context module.
package prospects

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"tune_outbound_backend/internal/events"
	apphttp "tune_outbound_backend/internal/http"
	"tune_outbound_backend/internal/prospects/handler"
	"tune_outbound_backend/internal/prospects/repository"
	"tune_outbound_backend/internal/prospects/research"
	"tune_outbound_backend/internal/prospects/service"
	"tune_outbound_backend/internal/scheduler"
	"tune_outbound_backend/platform/ai"
	"tune_outbound_backend/platform/config"
	"tune_outbound_backend/platform/logger"
	"tune_outbound_backend/platform/validator"
)

// Module is the prospects bounded context module implementing http.Module.
type Module struct {
	handler  *handler.Handler
	pipeline *service.Pipeline
}

// NewModule creates and initializes the prospects module with all its
// dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, cfg *config.Config, benchmarks config.Benchmarks, llm ai.TextGenerator, queue scheduler.Enqueuer, log *logger.Logger) (*Module, error) {
	repo := repository.New(pool)
	researcher := research.New(llm, log)

	analyzer, err := service.NewAnalyzer(researcher, benchmarks, cfg.Scoring, log)
	if err != nil {
		return nil, err
	}
	pipeline := service.NewPipeline(analyzer, repo, bus, log)

	return &Module{
		handler:  handler.New(pipeline, queue, val),
		pipeline: pipeline,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "prospects"
}

// Pipeline exposes the analysis pipeline for the worker binary.
func (m *Module) Pipeline() *service.Pipeline {
	return m.pipeline
}

// RegisterRoutes mounts the prospects routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.V1.Group("/prospects")
	g.POST("/analyze", m.handler.Analyze)
	g.POST("/analyze-batch", m.handler.AnalyzeBatch)
	g.GET("/:id", m.handler.Get)
}

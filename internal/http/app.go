package http

import (
	"context"

	"tune_outbound_backend/internal/events"
	"tune_outbound_backend/platform/config"
	"tune_outbound_backend/platform/httpkit"
	"tune_outbound_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration.
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness checks (DB ping).
	Health HealthChecker
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// Keys authenticates API keys for the /api/v1 surface.
	Keys httpkit.KeyStore
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}

// Package transport defines the HTTP DTOs for the agents context.
package transport

import agents "tune_outbound_backend/internal/agents/domain"

// BuildRequest asks for an industry agent profile to be built.
type BuildRequest struct {
	Industry string `json:"industry" validate:"required,min=2,max=100"`
	Force    bool   `json:"force"`
}

// StatusResponse reports the build state of an industry agent.
type StatusResponse struct {
	Industry string            `json:"industry"`
	Status   agents.BuildStatus `json:"status"`
}

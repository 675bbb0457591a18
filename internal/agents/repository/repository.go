// Package repository persists industry agent profiles as jsonb rows.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	agents "tune_outbound_backend/internal/agents/domain"
	"tune_outbound_backend/platform/apperr"
)

const agentNotFoundMessage = "industry agent not found"

// Repo stores agent profiles in Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new agents repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Upsert writes the profile for its industry, replacing any previous build.
func (r *Repo) Upsert(ctx context.Context, profile agents.Profile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal agent profile: %w", err)
	}

	query := `
		INSERT INTO industry_agents (industry, name, version, profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (industry) DO UPDATE
		SET name = EXCLUDED.name,
			version = EXCLUDED.version,
			profile = EXCLUDED.profile,
			updated_at = now()`

	if _, err := r.pool.Exec(ctx, query, profile.Industry, profile.Name, profile.Version, payload); err != nil {
		return fmt.Errorf("upsert industry agent: %w", err)
	}
	return nil
}

// Get loads the profile for an industry.
func (r *Repo) Get(ctx context.Context, industry string) (agents.Profile, error) {
	query := `
		SELECT profile, created_at, updated_at
		FROM industry_agents
		WHERE industry = $1`

	var payload []byte
	var profile agents.Profile
	if err := r.pool.QueryRow(ctx, query, industry).Scan(&payload, &profile.CreatedAt, &profile.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return agents.Profile{}, apperr.NotFound(agentNotFoundMessage)
		}
		return agents.Profile{}, fmt.Errorf("get industry agent: %w", err)
	}

	createdAt, updatedAt := profile.CreatedAt, profile.UpdatedAt
	if err := json.Unmarshal(payload, &profile); err != nil {
		return agents.Profile{}, fmt.Errorf("unmarshal agent profile: %w", err)
	}
	profile.CreatedAt, profile.UpdatedAt = createdAt, updatedAt
	return profile, nil
}

// Exists reports whether an agent has been built for the industry.
func (r *Repo) Exists(ctx context.Context, industry string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM industry_agents WHERE industry = $1)`
	if err := r.pool.QueryRow(ctx, query, industry).Scan(&exists); err != nil {
		return false, fmt.Errorf("check industry agent: %w", err)
	}
	return exists, nil
}

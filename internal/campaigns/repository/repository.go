// Package repository persists campaigns.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tune_outbound_backend/platform/apperr"
)

const campaignNotFoundMessage = "campaign not found"

// Campaign is a stored outreach campaign.
type Campaign struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Campaign lifecycle statuses.
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Totals summarizes a campaign's prospect pipeline.
type Totals struct {
	TotalProspects int     `json:"totalProspects"`
	Analyzed       int     `json:"analyzed"`
	TierA          int     `json:"tierA"`
	TierB          int     `json:"tierB"`
	TierC          int     `json:"tierC"`
	PipelineValue  float64 `json:"pipelineValue"`
}

// Repo stores campaigns in Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new campaigns repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create registers a new campaign in draft status.
func (r *Repo) Create(ctx context.Context, name, industry string) (Campaign, error) {
	c := Campaign{Name: name, Industry: industry, Status: StatusDraft}
	query := `
		INSERT INTO campaigns (name, industry, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`
	if err := r.pool.QueryRow(ctx, query, name, industry, c.Status).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return Campaign{}, fmt.Errorf("create campaign: %w", err)
	}
	return c, nil
}

// GetByID loads one campaign.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Campaign, error) {
	var c Campaign
	query := `
		SELECT id, name, industry, status, created_at, updated_at
		FROM campaigns WHERE id = $1`
	if err := r.pool.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Industry, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Campaign{}, apperr.NotFound(campaignNotFoundMessage)
		}
		return Campaign{}, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

// List returns campaigns newest first.
func (r *Repo) List(ctx context.Context) ([]Campaign, error) {
	query := `
		SELECT id, name, industry, status, created_at, updated_at
		FROM campaigns ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var out []Campaign
	for rows.Next() {
		var c Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.Industry, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateStatus moves a campaign through its lifecycle.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update campaign status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(campaignNotFoundMessage)
	}
	return nil
}

// Totals aggregates prospect counts and pipeline value for a campaign.
func (r *Repo) Totals(ctx context.Context, id uuid.UUID) (Totals, error) {
	var t Totals
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE analysis_status = 'analyzed'),
			COUNT(*) FILTER (WHERE priority_tier = 'A'),
			COUNT(*) FILTER (WHERE priority_tier = 'B'),
			COUNT(*) FILTER (WHERE priority_tier = 'C'),
			COALESCE(SUM(annual_savings), 0)
		FROM prospects WHERE campaign_id = $1`
	if err := r.pool.QueryRow(ctx, query, id).
		Scan(&t.TotalProspects, &t.Analyzed, &t.TierA, &t.TierB, &t.TierC, &t.PipelineValue); err != nil {
		return Totals{}, fmt.Errorf("campaign totals: %w", err)
	}
	return t, nil
}

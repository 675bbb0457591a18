// Package repository persists generated outreach content and delivery
// events.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	content "tune_outbound_backend/internal/content/domain"
	"tune_outbound_backend/platform/apperr"
)

const contentNotFoundMessage = "generated content not found"

// StoredEmail is one persisted touch.
type StoredEmail struct {
	ID         uuid.UUID `json:"id"`
	ProspectID uuid.UUID `json:"prospectId"`
	content.Email
	CreatedAt time.Time `json:"createdAt"`
}

// Repo stores generated content in Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new content repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// SaveSequence replaces a prospect's stored sequence with the given one.
func (r *Repo) SaveSequence(ctx context.Context, prospectID uuid.UUID, emails []content.Email) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save sequence: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM generated_content WHERE prospect_id = $1`, prospectID); err != nil {
		return fmt.Errorf("clear previous sequence: %w", err)
	}

	query := `
		INSERT INTO generated_content (
			prospect_id, touch_number, channel, subject, body,
			personalization_used, key_points, quality_score
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, e := range emails {
		if _, err := tx.Exec(ctx, query,
			prospectID, e.TouchNumber, string(e.Channel), e.Subject, e.Body,
			e.PersonalizationUsed, e.KeyPoints, e.QualityScore,
		); err != nil {
			return fmt.Errorf("insert touch %d: %w", e.TouchNumber, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save sequence: %w", err)
	}
	return nil
}

// ListByProspect returns a prospect's stored sequence in touch order.
func (r *Repo) ListByProspect(ctx context.Context, prospectID uuid.UUID) ([]StoredEmail, error) {
	query := `
		SELECT id, prospect_id, touch_number, channel, subject, body,
			personalization_used, key_points, quality_score, created_at
		FROM generated_content
		WHERE prospect_id = $1
		ORDER BY touch_number`

	rows, err := r.pool.Query(ctx, query, prospectID)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	var out []StoredEmail
	for rows.Next() {
		var e StoredEmail
		var channel string
		if err := rows.Scan(
			&e.ID, &e.ProspectID, &e.TouchNumber, &channel, &e.Subject, &e.Body,
			&e.PersonalizationUsed, &e.KeyPoints, &e.QualityScore, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		e.Channel = content.Channel(channel)
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetEmail loads one stored touch.
func (r *Repo) GetEmail(ctx context.Context, id uuid.UUID) (StoredEmail, error) {
	query := `
		SELECT id, prospect_id, touch_number, channel, subject, body,
			personalization_used, key_points, quality_score, created_at
		FROM generated_content
		WHERE id = $1`

	var e StoredEmail
	var channel string
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.ProspectID, &e.TouchNumber, &channel, &e.Subject, &e.Body,
		&e.PersonalizationUsed, &e.KeyPoints, &e.QualityScore, &e.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StoredEmail{}, apperr.NotFound(contentNotFoundMessage)
		}
		return StoredEmail{}, fmt.Errorf("get content: %w", err)
	}
	e.Channel = content.Channel(channel)
	return e, nil
}

// RecordEvent appends a delivery lifecycle event (sent, opened, replied)
// for a stored touch.
func (r *Repo) RecordEvent(ctx context.Context, contentID uuid.UUID, eventType string) error {
	query := `INSERT INTO email_events (content_id, event_type) VALUES ($1, $2)`
	if _, err := r.pool.Exec(ctx, query, contentID, eventType); err != nil {
		return fmt.Errorf("record email event: %w", err)
	}
	return nil
}

// Package repository persists API keys and backs the key middleware.
package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tune_outbound_backend/platform/httpkit"
)

// Repo stores API keys in Postgres. It implements httpkit.KeyStore.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new API key repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// FindByHash loads one key record by its SHA-256 digest. A missing key
// returns (nil, nil) so the middleware rejects it without leaking detail.
func (r *Repo) FindByHash(ctx context.Context, keyHash string) (*httpkit.APIKey, error) {
	var key httpkit.APIKey
	query := `
		SELECT key_hash, name, role, rate_limit_per_minute, active
		FROM api_keys WHERE key_hash = $1`
	if err := r.pool.QueryRow(ctx, query, keyHash).
		Scan(&key.KeyHash, &key.Name, &key.Role, &key.RateLimitPerMinute, &key.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find api key: %w", err)
	}
	return &key, nil
}

// Create mints a new key, stores its digest and returns the plaintext.
// The plaintext is shown exactly once; only the hash survives.
func (r *Repo) Create(ctx context.Context, name, role string, rateLimitPerMinute int) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	plaintext := "tok_" + hex.EncodeToString(raw)

	query := `
		INSERT INTO api_keys (key_hash, name, role, rate_limit_per_minute, active)
		VALUES ($1, $2, $3, $4, true)`
	if _, err := r.pool.Exec(ctx, query, httpkit.HashAPIKey(plaintext), name, role, rateLimitPerMinute); err != nil {
		return "", fmt.Errorf("store api key: %w", err)
	}
	return plaintext, nil
}

// Deactivate revokes a key by name.
func (r *Repo) Deactivate(ctx context.Context, name string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE api_keys SET active = false WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("deactivate api key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("api key %q not found", name)
	}
	return nil
}

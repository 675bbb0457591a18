// Package repository persists analyzed prospects.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tune_outbound_backend/internal/prospects/domain"
	"tune_outbound_backend/platform/apperr"
)

const prospectNotFoundMessage = "prospect not found"

// Prospect is a stored analysis row.
type Prospect struct {
	ID                   uuid.UUID              `json:"id"`
	CampaignID           uuid.UUID              `json:"campaignId"`
	CompanyName          string                 `json:"companyName"`
	Domain               string                 `json:"domain,omitempty"`
	Industry             string                 `json:"industry"`
	EmployeeCount        int                    `json:"employeeCount"`
	EstimatedSqft        float64                `json:"estimatedSqft"`
	EstimatedEnergySpend float64                `json:"estimatedEnergySpend"`
	CompositeScore       float64                `json:"compositeScore"`
	PriorityTier         string                 `json:"priorityTier"`
	Scores               domain.SubScores       `json:"scores"`
	AnnualSavings        float64                `json:"annualSavings"`
	PaybackMonths        float64                `json:"paybackMonths"`
	Signals              []domain.IntentSignal  `json:"signals"`
	Personalization      []string               `json:"personalization"`
	AnalysisStatus       string                 `json:"analysisStatus"`
	OutreachStatus       string                 `json:"outreachStatus"`
	AnalyzedAt           time.Time              `json:"analyzedAt"`
}

// Repo stores prospects in Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new prospects repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// UpsertAnalysis writes an analysis result for a campaign. Re-analyzing
// the same company in the same campaign replaces the previous row.
func (r *Repo) UpsertAnalysis(ctx context.Context, campaignID uuid.UUID, result domain.AnalysisResult) (Prospect, error) {
	signals, err := json.Marshal(result.Signals)
	if err != nil {
		return Prospect{}, fmt.Errorf("marshal signals: %w", err)
	}
	personalization, err := json.Marshal(result.Personalization)
	if err != nil {
		return Prospect{}, fmt.Errorf("marshal personalization: %w", err)
	}

	query := `
		INSERT INTO prospects (
			campaign_id, company_name, domain, industry, employee_count,
			estimated_sqft, estimated_energy_spend,
			composite_score, priority_tier,
			intent_score, technical_fit_score, urgency_score,
			persona_quality_score, account_value_score,
			annual_savings, payback_months,
			signals, personalization,
			analysis_status, analyzed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, 'analyzed', $19)
		ON CONFLICT (campaign_id, company_name) DO UPDATE
		SET domain = EXCLUDED.domain,
			industry = EXCLUDED.industry,
			employee_count = EXCLUDED.employee_count,
			estimated_sqft = EXCLUDED.estimated_sqft,
			estimated_energy_spend = EXCLUDED.estimated_energy_spend,
			composite_score = EXCLUDED.composite_score,
			priority_tier = EXCLUDED.priority_tier,
			intent_score = EXCLUDED.intent_score,
			technical_fit_score = EXCLUDED.technical_fit_score,
			urgency_score = EXCLUDED.urgency_score,
			persona_quality_score = EXCLUDED.persona_quality_score,
			account_value_score = EXCLUDED.account_value_score,
			annual_savings = EXCLUDED.annual_savings,
			payback_months = EXCLUDED.payback_months,
			signals = EXCLUDED.signals,
			personalization = EXCLUDED.personalization,
			analysis_status = 'analyzed',
			analyzed_at = EXCLUDED.analyzed_at
		RETURNING id`

	p := prospectFromResult(campaignID, result)
	if err := r.pool.QueryRow(ctx, query,
		campaignID, result.Profile.CompanyName, result.Profile.Domain, result.Profile.Industry,
		result.Profile.EmployeeCount, result.Profile.EstimatedSqft, result.Profile.EstimatedEnergySpend,
		result.Scores.Composite, string(result.Tier),
		result.Scores.Intent, result.Scores.TechnicalFit, result.Scores.Urgency,
		result.Scores.PersonaQuality, result.Scores.AccountValue,
		result.Projection.AnnualSavings, result.Projection.PaybackMonths,
		signals, personalization, result.AnalyzedAt,
	).Scan(&p.ID); err != nil {
		return Prospect{}, fmt.Errorf("upsert prospect: %w", err)
	}
	return p, nil
}

// GetByID loads one prospect.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Prospect, error) {
	rows, err := r.pool.Query(ctx, selectProspects+` WHERE id = $1`, id)
	if err != nil {
		return Prospect{}, fmt.Errorf("get prospect: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return Prospect{}, apperr.NotFound(prospectNotFoundMessage)
	}
	return scanProspect(rows)
}

// ListByCampaign returns a campaign's prospects, optionally filtered by
// tier, highest composite first.
func (r *Repo) ListByCampaign(ctx context.Context, campaignID uuid.UUID, tier string) ([]Prospect, error) {
	query := selectProspects + ` WHERE campaign_id = $1`
	args := []any{campaignID}
	if tier != "" {
		query += ` AND priority_tier = $2`
		args = append(args, tier)
	}
	query += ` ORDER BY composite_score DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list prospects: %w", err)
	}
	defer rows.Close()

	var out []Prospect
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateOutreachStatus moves a prospect through the outreach lifecycle.
func (r *Repo) UpdateOutreachStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE prospects SET outreach_status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update outreach status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(prospectNotFoundMessage)
	}
	return nil
}

const selectProspects = `
	SELECT id, campaign_id, company_name, domain, industry, employee_count,
		estimated_sqft, estimated_energy_spend, composite_score, priority_tier,
		intent_score, technical_fit_score, urgency_score, persona_quality_score,
		account_value_score, annual_savings, payback_months, signals,
		personalization, analysis_status, outreach_status, analyzed_at
	FROM prospects`

func scanProspect(row pgx.Row) (Prospect, error) {
	var p Prospect
	var signals, personalization []byte
	if err := row.Scan(
		&p.ID, &p.CampaignID, &p.CompanyName, &p.Domain, &p.Industry, &p.EmployeeCount,
		&p.EstimatedSqft, &p.EstimatedEnergySpend, &p.CompositeScore, &p.PriorityTier,
		&p.Scores.Intent, &p.Scores.TechnicalFit, &p.Scores.Urgency, &p.Scores.PersonaQuality,
		&p.Scores.AccountValue, &p.AnnualSavings, &p.PaybackMonths, &signals,
		&personalization, &p.AnalysisStatus, &p.OutreachStatus, &p.AnalyzedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Prospect{}, apperr.NotFound(prospectNotFoundMessage)
		}
		return Prospect{}, fmt.Errorf("scan prospect: %w", err)
	}
	if len(signals) > 0 {
		if err := json.Unmarshal(signals, &p.Signals); err != nil {
			return Prospect{}, fmt.Errorf("unmarshal signals: %w", err)
		}
	}
	if len(personalization) > 0 {
		if err := json.Unmarshal(personalization, &p.Personalization); err != nil {
			return Prospect{}, fmt.Errorf("unmarshal personalization: %w", err)
		}
	}
	return p, nil
}

// ToAnalysisResult rebuilds the in-memory analysis view of a stored
// prospect. The projection is re-derived from stored figures where the
// row does not carry every field.
func (p Prospect) ToAnalysisResult() domain.AnalysisResult {
	monthly := 0.0
	if p.AnnualSavings > 0 {
		monthly = p.AnnualSavings / 12
	}
	savingsPct := 0.0
	if p.EstimatedEnergySpend > 0 {
		savingsPct = p.AnnualSavings / p.EstimatedEnergySpend * 100
	}
	return domain.AnalysisResult{
		Profile: domain.ProspectProfile{
			CompanyName:          p.CompanyName,
			Domain:               p.Domain,
			Industry:             p.Industry,
			EmployeeCount:        p.EmployeeCount,
			EstimatedSqft:        p.EstimatedSqft,
			EstimatedEnergySpend: p.EstimatedEnergySpend,
		},
		Projection: domain.SavingsProjection{
			AnnualSavings:       p.AnnualSavings,
			MonthlySavings:      monthly,
			FiveYearSavings:     p.AnnualSavings * 5,
			InstallationCost:    domain.EstimatedInstallCost(p.EstimatedSqft),
			PaybackMonths:       p.PaybackMonths,
			CarbonReductionTons: domain.EstimatedCarbonTons(p.AnnualSavings),
			SavingsPercentage:   savingsPct,
		},
		Signals:         p.Signals,
		Scores:          domain.ScoreSet{SubScores: p.Scores, Composite: p.CompositeScore},
		Tier:            domain.Tier(p.PriorityTier),
		Personalization: p.Personalization,
		AnalyzedAt:      p.AnalyzedAt,
	}
}

func prospectFromResult(campaignID uuid.UUID, result domain.AnalysisResult) Prospect {
	return Prospect{
		CampaignID:           campaignID,
		CompanyName:          result.Profile.CompanyName,
		Domain:               result.Profile.Domain,
		Industry:             result.Profile.Industry,
		EmployeeCount:        result.Profile.EmployeeCount,
		EstimatedSqft:        result.Profile.EstimatedSqft,
		EstimatedEnergySpend: result.Profile.EstimatedEnergySpend,
		CompositeScore:       result.Scores.Composite,
		PriorityTier:         string(result.Tier),
		Scores:               result.Scores.SubScores,
		AnnualSavings:        result.Projection.AnnualSavings,
		PaybackMonths:        result.Projection.PaybackMonths,
		Signals:              result.Signals,
		Personalization:      result.Personalization,
		AnalysisStatus:       "analyzed",
		AnalyzedAt:           result.AnalyzedAt,
	}
}

package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Analytics is the aggregated performance view of one campaign.
type Analytics struct {
	Totals            Totals         `json:"totals"`
	AvgCompositeScore float64        `json:"avgCompositeScore"`
	AvgAnnualSavings  float64        `json:"avgAnnualSavings"`
	ScoreAverages     ScoreAverages  `json:"scoreAverages"`
	Content           ContentStats   `json:"content"`
	EmailEvents       map[string]int `json:"emailEvents"`
}

// ScoreAverages holds the mean of each sub-score across analyzed prospects.
type ScoreAverages struct {
	Intent         float64 `json:"intent"`
	TechnicalFit   float64 `json:"technicalFit"`
	Urgency        float64 `json:"urgency"`
	PersonaQuality float64 `json:"personaQuality"`
	AccountValue   float64 `json:"accountValue"`
}

// ContentStats summarizes generated outreach content.
type ContentStats struct {
	EmailsGenerated     int     `json:"emailsGenerated"`
	ProspectsWithEmails int     `json:"prospectsWithEmails"`
	AvgQualityScore     float64 `json:"avgQualityScore"`
}

// Analytics aggregates scoring, content and delivery stats for a campaign.
func (r *Repo) Analytics(ctx context.Context, id uuid.UUID) (Analytics, error) {
	a := Analytics{EmailEvents: map[string]int{}}

	totals, err := r.Totals(ctx, id)
	if err != nil {
		return Analytics{}, err
	}
	a.Totals = totals

	scoreQuery := `
		SELECT COALESCE(AVG(composite_score), 0),
			COALESCE(AVG(annual_savings), 0),
			COALESCE(AVG(intent_score), 0),
			COALESCE(AVG(technical_fit_score), 0),
			COALESCE(AVG(urgency_score), 0),
			COALESCE(AVG(persona_quality_score), 0),
			COALESCE(AVG(account_value_score), 0)
		FROM prospects WHERE campaign_id = $1 AND analysis_status = 'analyzed'`
	if err := r.pool.QueryRow(ctx, scoreQuery, id).Scan(
		&a.AvgCompositeScore, &a.AvgAnnualSavings,
		&a.ScoreAverages.Intent, &a.ScoreAverages.TechnicalFit, &a.ScoreAverages.Urgency,
		&a.ScoreAverages.PersonaQuality, &a.ScoreAverages.AccountValue,
	); err != nil {
		return Analytics{}, fmt.Errorf("campaign score averages: %w", err)
	}

	contentQuery := `
		SELECT COUNT(gc.id),
			COUNT(DISTINCT gc.prospect_id),
			COALESCE(AVG(gc.quality_score), 0)
		FROM generated_content gc
		JOIN prospects p ON p.id = gc.prospect_id
		WHERE p.campaign_id = $1`
	if err := r.pool.QueryRow(ctx, contentQuery, id).Scan(
		&a.Content.EmailsGenerated, &a.Content.ProspectsWithEmails, &a.Content.AvgQualityScore,
	); err != nil {
		return Analytics{}, fmt.Errorf("campaign content stats: %w", err)
	}

	eventQuery := `
		SELECT ee.event_type, COUNT(*)
		FROM email_events ee
		JOIN generated_content gc ON gc.id = ee.content_id
		JOIN prospects p ON p.id = gc.prospect_id
		WHERE p.campaign_id = $1
		GROUP BY ee.event_type`
	rows, err := r.pool.Query(ctx, eventQuery, id)
	if err != nil {
		return Analytics{}, fmt.Errorf("campaign email events: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return Analytics{}, fmt.Errorf("scan email event stat: %w", err)
		}
		a.EmailEvents[eventType] = count
	}
	return a, rows.Err()
}

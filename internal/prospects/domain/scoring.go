package domain

import (
	"math"

	"tune_outbound_backend/platform/config"
)

// Tier buckets a prospect by composite score.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
)

// SubScores are the five 0-100 inputs to the composite.
type SubScores struct {
	Intent         float64 `json:"intent"`
	TechnicalFit   float64 `json:"technical_fit"`
	Urgency        float64 `json:"urgency"`
	PersonaQuality float64 `json:"persona_quality"`
	AccountValue   float64 `json:"account_value"`
}

// ScoreSet is the clamped sub-scores together with the weighted composite.
type ScoreSet struct {
	SubScores
	Composite float64 `json:"composite"`
}

// ComputeScores clamps each sub-score to [0,100] and folds them into the
// weighted composite, rounded to one decimal place.
func ComputeScores(s SubScores, w config.ScoreWeights) ScoreSet {
	clamped := SubScores{
		Intent:         clamp(s.Intent, 0, 100),
		TechnicalFit:   clamp(s.TechnicalFit, 0, 100),
		Urgency:        clamp(s.Urgency, 0, 100),
		PersonaQuality: clamp(s.PersonaQuality, 0, 100),
		AccountValue:   clamp(s.AccountValue, 0, 100),
	}

	composite := clamped.Intent*w.Intent +
		clamped.TechnicalFit*w.TechnicalFit +
		clamped.Urgency*w.Urgency +
		clamped.PersonaQuality*w.PersonaQuality +
		clamped.AccountValue*w.AccountValue

	return ScoreSet{SubScores: clamped, Composite: round1(composite)}
}

// TierFor maps a composite score to its tier using the configured
// thresholds. Boundary values belong to the higher tier.
func TierFor(composite float64, sc config.ScoringConfig) Tier {
	switch {
	case composite >= sc.TierAMin:
		return TierA
	case composite >= sc.TierBMin:
		return TierB
	default:
		return TierC
	}
}

// TechnicalFitScore estimates how well the product fits the prospect from
// company size and projected economics. Base 40, capped at 100.
func TechnicalFitScore(p ProspectProfile, proj SavingsProjection) float64 {
	score := 40.0

	switch {
	case p.EmployeeCount > 500:
		score += 30
	case p.EmployeeCount > 200:
		score += 20
	case p.EmployeeCount > 100:
		score += 10
	}

	switch {
	case proj.AnnualSavings > 100_000:
		score += 20
	case proj.AnnualSavings > 50_000:
		score += 10
	}

	if proj.PaybackMonths < 15 {
		score += 10
	}

	return math.Min(score, 100)
}

// AccountValueScore scales projected annual savings onto 0-100, with
// $50k of annual savings worth 100 points.
func AccountValueScore(proj SavingsProjection) float64 {
	return round1(math.Min(proj.AnnualSavings/50_000*100, 100))
}

package config

import (
	"math"

	"tune_outbound_backend/platform/apperr"
)

// weightSumEpsilon is the tolerance for the weight-sum invariant. Weights are
// validated rather than renormalized: silent renormalization would hide a
// configuration bug.
const weightSumEpsilon = 1e-6

// ScoreWeights holds the five sub-score weights used for the composite score.
type ScoreWeights struct {
	Intent         float64 `json:"intent" yaml:"intent"`
	TechnicalFit   float64 `json:"technical_fit" yaml:"technical_fit"`
	Urgency        float64 `json:"urgency" yaml:"urgency"`
	PersonaQuality float64 `json:"persona_quality" yaml:"persona_quality"`
	AccountValue   float64 `json:"account_value" yaml:"account_value"`
}

// DefaultScoreWeights are the shipped weights, matching the agent builder's
// default scoring protocol.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Intent:         0.35,
		TechnicalFit:   0.25,
		Urgency:        0.15,
		PersonaQuality: 0.20,
		AccountValue:   0.05,
	}
}

// Validate checks that all weights are non-negative and sum to 1.0 within
// epsilon. A violation is a configuration error, reported at startup.
func (w ScoreWeights) Validate() error {
	for _, v := range []float64{w.Intent, w.TechnicalFit, w.Urgency, w.PersonaQuality, w.AccountValue} {
		if v < 0 {
			return apperr.Configuration("scoring weights must be non-negative")
		}
	}
	sum := w.Intent + w.TechnicalFit + w.Urgency + w.PersonaQuality + w.AccountValue
	if math.Abs(sum-1.0) > weightSumEpsilon {
		return apperr.Configuration("scoring weights must sum to 1.0")
	}
	return nil
}

// ScoringConfig centralizes the composite-score weights and the priority-tier
// thresholds. Both were scattered as literals in earlier revisions; they live
// here so they are validated exactly once.
type ScoringConfig struct {
	Weights ScoreWeights

	// TierAMin is the inclusive lower bound of the A tier.
	TierAMin float64
	// TierBMin is the inclusive lower bound of the B tier. Everything below
	// is C.
	TierBMin float64
}

// DefaultScoringConfig returns the shipped scoring configuration
// (A >= 75, 60 <= B < 75, C < 60).
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights:  DefaultScoreWeights(),
		TierAMin: 75,
		TierBMin: 60,
	}
}

// Validate checks the weight-sum invariant and the tier band ordering.
func (s ScoringConfig) Validate() error {
	if err := s.Weights.Validate(); err != nil {
		return err
	}
	if !(s.TierBMin > 0 && s.TierAMin > s.TierBMin && s.TierAMin <= 100) {
		return apperr.Configuration("tier thresholds must satisfy 0 < B < A <= 100")
	}
	return nil
}

func loadScoring() (ScoringConfig, error) {
	def := DefaultScoringConfig()
	cfg := ScoringConfig{
		Weights: ScoreWeights{
			Intent:         mustFloat(getEnv("SCORE_WEIGHT_INTENT", ""), def.Weights.Intent),
			TechnicalFit:   mustFloat(getEnv("SCORE_WEIGHT_TECHNICAL_FIT", ""), def.Weights.TechnicalFit),
			Urgency:        mustFloat(getEnv("SCORE_WEIGHT_URGENCY", ""), def.Weights.Urgency),
			PersonaQuality: mustFloat(getEnv("SCORE_WEIGHT_PERSONA_QUALITY", ""), def.Weights.PersonaQuality),
			AccountValue:   mustFloat(getEnv("SCORE_WEIGHT_ACCOUNT_VALUE", ""), def.Weights.AccountValue),
		},
		TierAMin: mustFloat(getEnv("TIER_A_MIN", ""), def.TierAMin),
		TierBMin: mustFloat(getEnv("TIER_B_MIN", ""), def.TierBMin),
	}
	if err := cfg.Validate(); err != nil {
		return ScoringConfig{}, err
	}
	return cfg, nil
}

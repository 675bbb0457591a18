package domain

import "time"

// AnalysisResult is the full output of analyzing one prospect: the
// normalized profile, its projection, signals, scores and tier.
type AnalysisResult struct {
	Profile    ProspectProfile   `json:"profile"`
	Projection SavingsProjection `json:"projection"`
	Signals    []IntentSignal    `json:"signals"`
	Scores     ScoreSet          `json:"scores"`
	Tier       Tier              `json:"tier"`
	// Personalization holds the concrete details content generation can
	// reference for this prospect.
	Personalization      []string  `json:"personalization,omitempty"`
	RecommendedMessaging string    `json:"recommended_messaging,omitempty"`
	AnalyzedAt           time.Time `json:"analyzed_at"`
}

package domain

import (
	"math"
	"time"
)

// SignalCategory classifies where a buying signal came from.
type SignalCategory string

const (
	SignalSustainability   SignalCategory = "sustainability_commitment"
	SignalExpansion        SignalCategory = "expansion"
	SignalHiring           SignalCategory = "hiring"
	SignalRegulatory       SignalCategory = "regulatory"
	SignalFinancialTrigger SignalCategory = "financial_trigger"
	SignalOther            SignalCategory = "other"
)

// IntentSignal is a single observed buying signal with a confidence
// between 0 and 100.
type IntentSignal struct {
	Category   SignalCategory `json:"category"`
	Detail     string         `json:"detail"`
	Source     string         `json:"source,omitempty"`
	Confidence float64        `json:"confidence"`
	ObservedAt time.Time      `json:"observed_at,omitzero"`
}

// AggregateIntent folds a set of signals into a single 0-100 intent score.
// No signals yields a baseline of 20. Otherwise the score is the mean
// confidence discounted to 70%, plus 5 points per signal capped at 25.
func AggregateIntent(signals []IntentSignal) float64 {
	if len(signals) == 0 {
		return 20
	}

	var sum float64
	for _, s := range signals {
		sum += clamp(s.Confidence, 0, 100)
	}
	avg := sum / float64(len(signals))

	volume := math.Min(float64(len(signals))*5, 25)

	return round1(math.Min(avg*0.7+volume, 100))
}

package domain

import (
	"math"
	"testing"

	"tune_outbound_backend/platform/config"
)

func TestComputeScores(t *testing.T) {
	w := config.DefaultScoreWeights()

	t.Run("all hundred gives hundred", func(t *testing.T) {
		got := ComputeScores(SubScores{Intent: 100, TechnicalFit: 100, Urgency: 100, PersonaQuality: 100, AccountValue: 100}, w)
		approx(t, "Composite", got.Composite, 100, 0.05)
	})

	t.Run("all zero gives zero", func(t *testing.T) {
		got := ComputeScores(SubScores{}, w)
		if got.Composite != 0 {
			t.Errorf("Composite = %v, want 0", got.Composite)
		}
	})

	t.Run("clamps out of range inputs", func(t *testing.T) {
		got := ComputeScores(SubScores{Intent: 150, TechnicalFit: -20, Urgency: 50, PersonaQuality: 50, AccountValue: 50}, w)
		if got.Intent != 100 {
			t.Errorf("Intent = %v, want 100", got.Intent)
		}
		if got.TechnicalFit != 0 {
			t.Errorf("TechnicalFit = %v, want 0", got.TechnicalFit)
		}
		// .35*100 + .15*50 + .20*50 + .05*50
		approx(t, "Composite", got.Composite, 55, 0.05)
	})

	t.Run("uniform seventies give seventy, tier B", func(t *testing.T) {
		got := ComputeScores(SubScores{Intent: 70, TechnicalFit: 70, Urgency: 70, PersonaQuality: 70, AccountValue: 70}, w)
		if got.Composite != 70.0 {
			t.Errorf("Composite = %v, want 70.0", got.Composite)
		}
		sc := config.ScoringConfig{Weights: w, TierAMin: 75, TierBMin: 60}
		if tier := TierFor(got.Composite, sc); tier != TierB {
			t.Errorf("Tier = %v, want B", tier)
		}
	})

	t.Run("weighted mix", func(t *testing.T) {
		got := ComputeScores(SubScores{Intent: 75, TechnicalFit: 90, Urgency: 50, PersonaQuality: 80, AccountValue: 100}, w)
		// 26.25 + 22.5 + 7.5 + 16 + 5 = 77.25
		approx(t, "Composite", got.Composite, 77.3, 0.05)
	})
}

func TestComputeScoresMonotonic(t *testing.T) {
	w := config.DefaultScoreWeights()
	base := SubScores{Intent: 40, TechnicalFit: 40, Urgency: 40, PersonaQuality: 40, AccountValue: 40}
	baseline := ComputeScores(base, w).Composite

	bumped := base
	bumped.Intent = 60
	if got := ComputeScores(bumped, w).Composite; got < baseline {
		t.Errorf("raising intent lowered composite: %v < %v", got, baseline)
	}
}

func TestTierFor(t *testing.T) {
	sc := config.ScoringConfig{Weights: config.DefaultScoreWeights(), TierAMin: 75, TierBMin: 60}

	tests := []struct {
		composite float64
		want      Tier
	}{
		{100, TierA},
		{75.0, TierA},
		{74.9, TierB},
		{70, TierB},
		{60.0, TierB},
		{59.9, TierC},
		{0, TierC},
	}

	for _, tt := range tests {
		if got := TierFor(tt.composite, sc); got != tt.want {
			t.Errorf("TierFor(%v) = %v, want %v", tt.composite, got, tt.want)
		}
	}
}

func TestTechnicalFitScore(t *testing.T) {
	tests := []struct {
		name      string
		employees int
		annual    float64
		payback   float64
		want      float64
	}{
		{"small company no savings", 50, 10_000, PaybackSentinel, 40},
		{"midsize fast payback", 150, 60_000, 10, 70},
		{"large high savings", 250, 120_000, 14.9, 90},
		{"enterprise slow payback", 5000, 1_288_500, 32.6, 90},
		{"everything capped", 5000, 200_000, 5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ProspectProfile{CompanyName: "x", EmployeeCount: tt.employees}
			proj := SavingsProjection{AnnualSavings: tt.annual, PaybackMonths: tt.payback}
			if got := TechnicalFitScore(p, proj); got != tt.want {
				t.Errorf("TechnicalFitScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccountValueScore(t *testing.T) {
	tests := []struct {
		annual float64
		want   float64
	}{
		{0, 0},
		{25_000, 50},
		{50_000, 100},
		{1_000_000, 100},
	}

	for _, tt := range tests {
		got := AccountValueScore(SavingsProjection{AnnualSavings: tt.annual})
		if math.Abs(got-tt.want) > 0.05 {
			t.Errorf("AccountValueScore(%v) = %v, want %v", tt.annual, got, tt.want)
		}
	}
}

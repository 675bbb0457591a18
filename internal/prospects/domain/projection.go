package domain

import (
	"math"

	"tune_outbound_backend/platform/apperr"
)

// PaybackSentinel marks a projection that never pays back because the
// projected monthly savings are zero.
const PaybackSentinel = 999.0

// SavingsProjection is the dollar-and-carbon outcome projected for a
// prospect under an industry benchmark.
type SavingsProjection struct {
	AnnualSavings       float64 `json:"annual_savings"`
	MonthlySavings      float64 `json:"monthly_savings"`
	FiveYearSavings     float64 `json:"five_year_savings"`
	InstallationCost    float64 `json:"installation_cost"`
	PaybackMonths       float64 `json:"payback_months"`
	ROIPercentage       float64 `json:"roi_percentage"`
	CarbonReductionTons float64 `json:"carbon_reduction_tons"`
	SavingsPercentage   float64 `json:"savings_percentage"`
}

// Project computes the savings projection for a profile at the given
// benchmark percentage. The percentage is clamped to [0,100]; a profile
// with zero spend projects zero savings and the payback sentinel rather
// than an error.
func Project(p ProspectProfile, benchmarkPct float64) (SavingsProjection, error) {
	if p.EstimatedSqft < 0 || p.EstimatedEnergySpend < 0 {
		return SavingsProjection{}, apperr.Validation("profile figures must be non-negative")
	}

	pct := clamp(benchmarkPct, 0, 100)

	annual := p.EstimatedEnergySpend * pct / 100
	monthly := annual / 12
	install := p.EstimatedSqft * installCostPerSqft

	payback := PaybackSentinel
	if monthly > 0 {
		payback = round1(install / monthly)
	}

	roi := 0.0
	if install > 0 {
		roi = round1((annual*5 - install) / install * 100)
	}

	return SavingsProjection{
		AnnualSavings:       round2(annual),
		MonthlySavings:      round2(monthly),
		FiveYearSavings:     round2(annual * 5),
		InstallationCost:    round2(install),
		PaybackMonths:       payback,
		ROIPercentage:       roi,
		CarbonReductionTons: round1(annual * carbonTonsPerDollar),
		SavingsPercentage:   round2(pct),
	}, nil
}

// EstimatedInstallCost is the modeled filter installation cost for a
// facility of the given square footage.
func EstimatedInstallCost(sqft float64) float64 {
	return round2(sqft * installCostPerSqft)
}

// EstimatedCarbonTons is the modeled carbon reduction for a given annual
// dollar savings.
func EstimatedCarbonTons(annualSavings float64) float64 {
	return round1(annualSavings * carbonTonsPerDollar)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

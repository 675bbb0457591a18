package domain

import prospects "tune_outbound_backend/internal/prospects/domain"

// Mode controls how much effort the cold end of the list gets.
type Mode string

const (
	// ModeStandard gives C-tier prospects one lightweight touch.
	ModeStandard Mode = "standard"
	// ModeSkipCold drops C-tier prospects entirely.
	ModeSkipCold Mode = "skip_cold"
)

// Touch counts per tier.
const (
	TouchesTierA = 5
	TouchesTierB = 3
	TouchesTierC = 1
)

// TierGroup is one tier's slice of a dispatch plan.
type TierGroup struct {
	Tier    prospects.Tier             `json:"tier"`
	Touches int                     `json:"touches"`
	Results []prospects.AnalysisResult `json:"results"`
}

// DispatchPlan partitions analysis results by tier with their planned
// touch counts.
type DispatchPlan struct {
	Groups map[prospects.Tier]TierGroup `json:"groups"`
	// Skipped counts results excluded by the mode.
	Skipped int `json:"skipped"`
}

// TouchCountFor returns the planned touches for a tier under a mode.
func TouchCountFor(tier prospects.Tier, mode Mode) int {
	switch tier {
	case prospects.TierA:
		return TouchesTierA
	case prospects.TierB:
		return TouchesTierB
	default:
		if mode == ModeSkipCold {
			return 0
		}
		return TouchesTierC
	}
}

// SelectForContent partitions results into tier groups. A zero touch
// count excludes the group's prospects from generation entirely.
func SelectForContent(results []prospects.AnalysisResult, mode Mode) DispatchPlan {
	plan := DispatchPlan{Groups: make(map[prospects.Tier]TierGroup)}

	for _, tier := range []prospects.Tier{prospects.TierA, prospects.TierB, prospects.TierC} {
		plan.Groups[tier] = TierGroup{Tier: tier, Touches: TouchCountFor(tier, mode)}
	}

	for _, r := range results {
		group := plan.Groups[r.Tier]
		if group.Touches == 0 {
			plan.Skipped++
			continue
		}
		group.Results = append(group.Results, r)
		plan.Groups[r.Tier] = group
	}
	return plan
}

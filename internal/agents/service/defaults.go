package service

import (
	"fmt"

	agents "tune_outbound_backend/internal/agents/domain"
)

// defaultPersonaResearch covers the facilities decision-maker every
// industry has, used when the LLM response cannot be parsed.
func defaultPersonaResearch(industry string) personaResearch {
	return personaResearch{
		Personas: []agents.PersonaProfile{
			{
				PersonaType:       "energy_manager",
				TypicalTitles:     []string{"Energy Manager", "Director of Facilities", "Chief Engineer"},
				Priorities:        []string{"reduce operating cost", "hit efficiency targets"},
				PainPoints:        []string{"rising utility rates", "aging equipment"},
				SuccessMetrics:    []string{"kWh reduction", "cost per square foot"},
				DecisionAuthority: "recommends, needs finance sign-off",
				ObjectionPatterns: []string{"no budget this cycle", "skeptical of savings claims"},
			},
		},
		ValueProps: map[string]agents.ValueProposition{
			"energy_manager": {
				Headline:          fmt.Sprintf("Cut %s facility energy spend without capital disruption", industry),
				ProofPoints:       []string{"verified savings at comparable facilities"},
				QuantifiedBenefit: "8-15% annual energy savings",
				Timeframe:         "payback typically under 36 months",
				RiskMitigation:    "performance-verified installation",
			},
		},
	}
}

func defaultSignalResearch() signalResearch {
	return signalResearch{
		IntentSignals: map[string][]string{
			"sustainability_commitments": {"published ESG or net-zero commitment"},
			"expansion_signals":          {"new facility announcement"},
			"hiring_signals":             {"facilities or energy manager job postings"},
			"esg_reporting":              {"annual sustainability report"},
		},
		UrgencyTriggers:   []string{"utility rate increase", "upcoming compliance deadline"},
		SavingsBenchmarks: map[string]float64{"typical_savings_pct": 11, "payback_months": 36},
	}
}

// DefaultFrameworks is the built-in 5-touch sequence used when the LLM
// framework research cannot be parsed, and as the base sequence for
// tier-gated truncation.
func DefaultFrameworks() []agents.EmailFramework {
	return []agents.EmailFramework{
		{
			TouchNumber:     1,
			Goal:            "earn a reply with a specific, quantified hook",
			FrameworkType:   "PAS",
			MaxWords:        120,
			Tone:            "direct, peer-to-peer",
			KeyMessage:      "your facility profile suggests meaningful savings",
			CTA:             "worth a 15-minute look?",
			Hooks:           []string{"projected annual savings", "payback period"},
			Personalization: []string{"company name", "industry detail", "savings figure"},
		},
		{
			TouchNumber:     2,
			Goal:            "add proof",
			FrameworkType:   "BAB",
			MaxWords:        110,
			Tone:            "evidence-led",
			KeyMessage:      "comparable facilities verified these results",
			CTA:             "want the case study?",
			Hooks:           []string{"peer facility result"},
			Personalization: []string{"company name", "industry peer"},
		},
		{
			TouchNumber:     3,
			Goal:            "address the obvious objection",
			FrameworkType:   "PEC+G",
			MaxWords:        110,
			Tone:            "candid",
			KeyMessage:      "no capital project required",
			CTA:             "open to a quick review?",
			Hooks:           []string{"installation cost vs savings"},
			Personalization: []string{"company name", "objection"},
		},
		{
			TouchNumber:     4,
			Goal:            "create urgency",
			FrameworkType:   "PAS",
			MaxWords:        100,
			Tone:            "matter-of-fact",
			KeyMessage:      "every month of delay costs the projected monthly savings",
			CTA:             "should I close the file?",
			Hooks:           []string{"monthly savings left on the table"},
			Personalization: []string{"company name", "monthly savings figure"},
		},
		{
			TouchNumber:     5,
			Goal:            "graceful breakup",
			FrameworkType:   "BAB",
			MaxWords:        80,
			Tone:            "light",
			KeyMessage:      "door stays open",
			CTA:             "reply anytime",
			Hooks:           []string{"summary of projected numbers"},
			Personalization: []string{"company name"},
		},
	}
}

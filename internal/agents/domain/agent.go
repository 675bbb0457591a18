// Package domain defines the industry agent profile types: buyer personas,
// value propositions, email frameworks and savings benchmarks for one
// target industry.
package domain

import "time"

// PersonaProfile describes one buyer persona inside the industry.
type PersonaProfile struct {
	PersonaType       string   `json:"persona_type"`
	TypicalTitles     []string `json:"typical_titles"`
	Priorities        []string `json:"priorities"`
	PainPoints        []string `json:"pain_points"`
	SuccessMetrics    []string `json:"success_metrics"`
	DecisionAuthority string   `json:"decision_authority"`
	ObjectionPatterns []string `json:"objection_patterns"`
}

// ValueProposition is the pitch tailored to one persona.
type ValueProposition struct {
	Headline           string   `json:"headline"`
	ProofPoints        []string `json:"proof_points"`
	QuantifiedBenefit  string   `json:"quantified_benefit"`
	Timeframe          string   `json:"timeframe"`
	RiskMitigation     string   `json:"risk_mitigation"`
}

// EmailFramework is the template contract for one touch in a sequence.
type EmailFramework struct {
	TouchNumber     int      `json:"touch_number"`
	Goal            string   `json:"goal"`
	FrameworkType   string   `json:"framework_type"`
	MaxWords        int      `json:"max_words"`
	Tone            string   `json:"tone"`
	KeyMessage      string   `json:"key_message"`
	CTA             string   `json:"cta"`
	Hooks           []string `json:"hooks"`
	Personalization []string `json:"personalization_requirements"`
}

// Profile is the complete industry agent: everything the pipeline needs
// to score and message prospects in one industry.
type Profile struct {
	Industry             string                      `json:"industry"`
	Name                 string                      `json:"name"`
	Description          string                      `json:"description"`
	Version              string                      `json:"version"`
	Personas             []PersonaProfile            `json:"personas"`
	ValueProps           map[string]ValueProposition `json:"value_props_by_persona"`
	SavingsBenchmarks    map[string]float64          `json:"savings_benchmarks"`
	IntentSignals        map[string][]string         `json:"intent_signals"`
	UrgencyTriggers      []string                    `json:"urgency_triggers"`
	EmailFrameworks      map[string][]EmailFramework `json:"email_sequences"`
	PersonalizationDepth int                         `json:"personalization_depth"`
	CreatedAt            time.Time                   `json:"created_at"`
	UpdatedAt            time.Time                   `json:"updated_at"`
}

// BuildStatus reports where an industry agent is in its lifecycle.
type BuildStatus string

const (
	StatusMissing  BuildStatus = "missing"
	StatusBuilding BuildStatus = "building"
	StatusReady    BuildStatus = "ready"
)

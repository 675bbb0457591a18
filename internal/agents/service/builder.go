// Package service builds industry agent profiles through a series of LLM
// research prompts and serves them from an injected cache.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	agents "tune_outbound_backend/internal/agents/domain"
	"tune_outbound_backend/platform/ai"
	"tune_outbound_backend/platform/ai/llmjson"
	"tune_outbound_backend/platform/apperr"
	"tune_outbound_backend/platform/logger"
)

const (
	profileVersion = "1.0"
	buildMaxTokens = 4000
)

// Store is the persistence surface the builder needs.
type Store interface {
	Upsert(ctx context.Context, profile agents.Profile) error
	Get(ctx context.Context, industry string) (agents.Profile, error)
	Exists(ctx context.Context, industry string) (bool, error)
}

// Builder creates and serves industry agent profiles.
type Builder struct {
	llm   ai.TextGenerator
	store Store
	cache *Cache
	log   *logger.Logger

	mu       sync.Mutex
	building map[string]struct{}
}

// NewBuilder wires a builder with its LLM, store and cache.
func NewBuilder(llm ai.TextGenerator, store Store, cache *Cache, log *logger.Logger) *Builder {
	return &Builder{
		llm:      llm,
		store:    store,
		cache:    cache,
		log:      log,
		building: make(map[string]struct{}),
	}
}

// Get returns the agent for an industry from cache, falling back to the
// store. A store hit backfills the cache.
func (b *Builder) Get(ctx context.Context, industry string) (agents.Profile, error) {
	industry = normalizeIndustry(industry)
	if industry == "" {
		return agents.Profile{}, apperr.Validation("industry is required")
	}

	if p, ok := b.cache.Get(industry); ok {
		return p, nil
	}

	p, err := b.store.Get(ctx, industry)
	if err != nil {
		return agents.Profile{}, err
	}
	b.cache.Put(p)
	return p, nil
}

// GetOrBuild returns the existing agent or builds one on the spot.
func (b *Builder) GetOrBuild(ctx context.Context, industry string) (agents.Profile, error) {
	p, err := b.Get(ctx, industry)
	if err == nil {
		return p, nil
	}
	if apperr.GetKind(err) != apperr.KindNotFound {
		return agents.Profile{}, err
	}
	return b.Build(ctx, industry)
}

// Status reports the lifecycle state for an industry agent.
func (b *Builder) Status(ctx context.Context, industry string) (agents.BuildStatus, error) {
	industry = normalizeIndustry(industry)

	b.mu.Lock()
	_, inFlight := b.building[industry]
	b.mu.Unlock()
	if inFlight {
		return agents.StatusBuilding, nil
	}

	if _, ok := b.cache.Get(industry); ok {
		return agents.StatusReady, nil
	}
	exists, err := b.store.Exists(ctx, industry)
	if err != nil {
		return agents.StatusMissing, err
	}
	if exists {
		return agents.StatusReady, nil
	}
	return agents.StatusMissing, nil
}

// Build runs the research prompts, assembles the profile and persists it.
// Unparseable LLM sections fall back to built-in defaults rather than
// failing the build.
func (b *Builder) Build(ctx context.Context, industry string) (agents.Profile, error) {
	industry = normalizeIndustry(industry)
	if industry == "" {
		return agents.Profile{}, apperr.Validation("industry is required")
	}

	b.mu.Lock()
	if _, inFlight := b.building[industry]; inFlight {
		b.mu.Unlock()
		return agents.Profile{}, apperr.Conflict("agent build already in progress for " + industry)
	}
	b.building[industry] = struct{}{}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.building, industry)
		b.mu.Unlock()
	}()

	personas, err := b.researchPersonas(ctx, industry)
	if err != nil {
		return agents.Profile{}, err
	}
	signals, err := b.researchSignals(ctx, industry)
	if err != nil {
		return agents.Profile{}, err
	}
	frameworks, err := b.researchFrameworks(ctx, industry)
	if err != nil {
		return agents.Profile{}, err
	}

	now := time.Now().UTC()
	profile := agents.Profile{
		Industry:             industry,
		Name:                 fmt.Sprintf("%s Energy Efficiency Specialist", titleCase(industry)),
		Description:          fmt.Sprintf("Outbound agent specialized in %s facility energy savings", industry),
		Version:              profileVersion,
		Personas:             personas.Personas,
		ValueProps:           personas.ValueProps,
		SavingsBenchmarks:    signals.SavingsBenchmarks,
		IntentSignals:        signals.IntentSignals,
		UrgencyTriggers:      signals.UrgencyTriggers,
		EmailFrameworks:      frameworks,
		PersonalizationDepth: 3,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := b.store.Upsert(ctx, profile); err != nil {
		return agents.Profile{}, err
	}
	b.cache.Put(profile)

	b.log.Info("industry agent built", "industry", industry, "personas", len(profile.Personas))
	return profile, nil
}

type personaResearch struct {
	Personas   []agents.PersonaProfile            `json:"personas"`
	ValueProps map[string]agents.ValueProposition `json:"value_props_by_persona"`
}

func (b *Builder) researchPersonas(ctx context.Context, industry string) (personaResearch, error) {
	prompt := fmt.Sprintf(`Research the buyer personas for energy efficiency solutions in the %s industry.

For each persona provide typical titles, priorities, pain points, success metrics,
decision authority and common objections, plus a tailored value proposition.

Respond with JSON only:
{
  "personas": [{"persona_type": "energy_manager|cfo|operations_director|sustainability_chief|director_facilities",
    "typical_titles": [], "priorities": [], "pain_points": [], "success_metrics": [],
    "decision_authority": "", "objection_patterns": []}],
  "value_props_by_persona": {"<persona_type>": {"headline": "", "proof_points": [],
    "quantified_benefit": "", "timeframe": "", "risk_mitigation": ""}}
}`, industry)

	raw, err := b.llm.Complete(ctx, prompt, buildMaxTokens)
	if err != nil {
		return personaResearch{}, apperr.Upstream("persona research failed", err)
	}

	out, parsed := llmjson.DecodeOr(raw, defaultPersonaResearch(industry))
	if !parsed {
		b.log.ParseFallback("persona research", fmt.Errorf("no JSON for industry %s", industry))
	}
	if len(out.Personas) == 0 {
		out = defaultPersonaResearch(industry)
	}
	return out, nil
}

type signalResearch struct {
	IntentSignals     map[string][]string `json:"intent_signals"`
	UrgencyTriggers   []string            `json:"urgency_triggers"`
	SavingsBenchmarks map[string]float64  `json:"savings_benchmarks"`
}

func (b *Builder) researchSignals(ctx context.Context, industry string) (signalResearch, error) {
	prompt := fmt.Sprintf(`Identify buying intent signals for energy efficiency solutions in the %s industry.

Respond with JSON only:
{
  "intent_signals": {"sustainability_commitments": [], "expansion_signals": [], "hiring_signals": [], "esg_reporting": []},
  "urgency_triggers": ["specific trigger 1", "specific trigger 2"],
  "savings_benchmarks": {"typical_savings_pct": 0.0, "payback_months": 0.0}
}`, industry)

	raw, err := b.llm.Complete(ctx, prompt, buildMaxTokens)
	if err != nil {
		return signalResearch{}, apperr.Upstream("signal research failed", err)
	}

	out, parsed := llmjson.DecodeOr(raw, defaultSignalResearch())
	if !parsed {
		b.log.ParseFallback("signal research", fmt.Errorf("no JSON for industry %s", industry))
	}
	return out, nil
}

func (b *Builder) researchFrameworks(ctx context.Context, industry string) (map[string][]agents.EmailFramework, error) {
	prompt := fmt.Sprintf(`Design a 5-touch cold email sequence framework for selling energy efficiency
solutions to the %s industry. Each touch has a goal, a copywriting framework
(PAS, BAB, PEC+G), a word cap, tone, key message, CTA, hooks and required
personalization.

Respond with JSON only:
{"email_sequences": {"default": [{"touch_number": 1, "goal": "", "framework_type": "",
  "max_words": 0, "tone": "", "key_message": "", "cta": "", "hooks": [],
  "personalization_requirements": []}]}}`, industry)

	raw, err := b.llm.Complete(ctx, prompt, buildMaxTokens)
	if err != nil {
		return nil, apperr.Upstream("framework research failed", err)
	}

	var payload struct {
		EmailSequences map[string][]agents.EmailFramework `json:"email_sequences"`
	}
	payload, parsed := llmjson.DecodeOr(raw, payload)
	if !parsed || len(payload.EmailSequences) == 0 {
		b.log.ParseFallback("framework research", fmt.Errorf("no JSON for industry %s", industry))
		return map[string][]agents.EmailFramework{"default": DefaultFrameworks()}, nil
	}
	return payload.EmailSequences, nil
}

func normalizeIndustry(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

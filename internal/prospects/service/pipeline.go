package service

import (
	"context"

	"github.com/google/uuid"

	"tune_outbound_backend/internal/events"
	"tune_outbound_backend/internal/prospects/domain"
	"tune_outbound_backend/internal/prospects/repository"
	"tune_outbound_backend/platform/logger"
)

// Store is the persistence surface of the pipeline.
type Store interface {
	UpsertAnalysis(ctx context.Context, campaignID uuid.UUID, result domain.AnalysisResult) (repository.Prospect, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.Prospect, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID, tier string) ([]repository.Prospect, error)
}

// Pipeline ties analysis to persistence. Analyses without a campaign are
// ephemeral; with one they are upserted on (campaign, company) and a
// ProspectAnalyzed event carrying the stored row's id is published.
type Pipeline struct {
	analyzer *Analyzer
	store    Store
	bus      events.Bus
	log      *logger.Logger
}

// NewPipeline wires the analyzer to its store and event bus.
func NewPipeline(analyzer *Analyzer, store Store, bus events.Bus, log *logger.Logger) *Pipeline {
	return &Pipeline{analyzer: analyzer, store: store, bus: bus, log: log}
}

// Analyzer exposes the underlying analyzer for callers that only need
// the in-memory pipeline.
func (p *Pipeline) Analyzer() *Analyzer {
	return p.analyzer
}

// Analyze runs one prospect through the pipeline and stores the result
// when a campaign is given.
func (p *Pipeline) Analyze(ctx context.Context, campaignID uuid.UUID, in domain.ProfileInput) (domain.AnalysisResult, error) {
	result, err := p.analyzer.Analyze(ctx, in)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	if campaignID != uuid.Nil {
		stored, err := p.store.UpsertAnalysis(ctx, campaignID, result)
		if err != nil {
			return domain.AnalysisResult{}, err
		}
		p.bus.Publish(ctx, analyzedEvent(stored, result))
	}
	return result, nil
}

// AnalyzeBatch analyzes every input and stores the successes. Storage
// failures downgrade the slot to an unknown failure without touching
// siblings. Events are dispatched synchronously so a completed batch
// implies every follow-on reaction has run.
func (p *Pipeline) AnalyzeBatch(ctx context.Context, campaignID uuid.UUID, inputs []domain.ProfileInput, concurrency int64) ([]Outcome, error) {
	outcomes, err := p.analyzer.AnalyzeBatch(ctx, inputs, concurrency)
	if err != nil {
		return nil, err
	}
	if campaignID == uuid.Nil {
		return outcomes, nil
	}

	for i := range outcomes {
		if outcomes[i].Result == nil {
			continue
		}
		stored, err := p.store.UpsertAnalysis(ctx, campaignID, *outcomes[i].Result)
		if err != nil {
			outcomes[i].Result = nil
			outcomes[i].Failure = &Failure{Reason: FailureUnknown, Message: "store analysis: " + err.Error()}
			continue
		}
		if err := p.bus.PublishSync(ctx, analyzedEvent(stored, *outcomes[i].Result)); err != nil {
			p.log.Warn("analyzed event handler failed",
				"company", stored.CompanyName, "prospectId", stored.ID, "error", err)
		}
	}
	return outcomes, nil
}

// Get loads a stored prospect.
func (p *Pipeline) Get(ctx context.Context, id uuid.UUID) (repository.Prospect, error) {
	return p.store.GetByID(ctx, id)
}

// ListByCampaign lists a campaign's stored prospects.
func (p *Pipeline) ListByCampaign(ctx context.Context, campaignID uuid.UUID, tier string) ([]repository.Prospect, error) {
	return p.store.ListByCampaign(ctx, campaignID, tier)
}

func analyzedEvent(stored repository.Prospect, result domain.AnalysisResult) events.ProspectAnalyzed {
	return events.ProspectAnalyzed{
		BaseEvent:   events.NewBaseEvent(),
		ProspectID:  stored.ID,
		CampaignID:  stored.CampaignID,
		CompanyName: result.Profile.CompanyName,
		Industry:    result.Profile.Industry,
		Tier:        string(result.Tier),
		Composite:   result.Scores.Composite,
	}
}

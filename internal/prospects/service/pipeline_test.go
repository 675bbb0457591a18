package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"tune_outbound_backend/internal/events"
	"tune_outbound_backend/internal/prospects/domain"
	"tune_outbound_backend/internal/prospects/repository"
	"tune_outbound_backend/internal/prospects/research"
	"tune_outbound_backend/platform/logger"
)

type fakeStore struct {
	mu  sync.Mutex
	ids map[string]uuid.UUID
}

func (s *fakeStore) UpsertAnalysis(ctx context.Context, campaignID uuid.UUID, result domain.AnalysisResult) (repository.Prospect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids == nil {
		s.ids = make(map[string]uuid.UUID)
	}
	id, ok := s.ids[result.Profile.CompanyName]
	if !ok {
		id = uuid.New()
		s.ids[result.Profile.CompanyName] = id
	}
	return repository.Prospect{
		ID:          id,
		CampaignID:  campaignID,
		CompanyName: result.Profile.CompanyName,
	}, nil
}

func (s *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (repository.Prospect, error) {
	return repository.Prospect{ID: id}, nil
}

func (s *fakeStore) ListByCampaign(ctx context.Context, campaignID uuid.UUID, tier string) ([]repository.Prospect, error) {
	return nil, nil
}

// Stored A-tier analyses must reach subscribers with the persisted row id,
// so the sequence auto-enqueue reaction can actually fire.
func TestAnalyzeBatchStoredATierReachesSubscriber(t *testing.T) {
	fr := &fakeResearch{reports: map[string]research.Report{
		"Grand Mesa Casino": {
			Signals: []domain.IntentSignal{
				{Category: domain.SignalHiring, Detail: "hiring energy manager", Confidence: 90},
				{Category: domain.SignalExpansion, Detail: "new tower announced", Confidence: 80},
			},
			UrgencyScore: 70,
		},
	}}
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)
	store := &fakeStore{}
	pipeline := NewPipeline(newTestAnalyzer(t, fr), store, bus, log)

	var mu sync.Mutex
	var enqueued []uuid.UUID
	bus.Subscribe(events.ProspectAnalyzed{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		analyzed, ok := event.(events.ProspectAnalyzed)
		if !ok {
			return nil
		}
		// Same gate as the composition roots.
		if analyzed.Tier != "A" || analyzed.ProspectID == uuid.Nil {
			return nil
		}
		mu.Lock()
		enqueued = append(enqueued, analyzed.ProspectID)
		mu.Unlock()
		return nil
	}))

	campaignID := uuid.New()
	inputs := []domain.ProfileInput{
		{CompanyName: "Grand Mesa Casino", Industry: "casino", EmployeeCount: 5000},
		{CompanyName: "Quiet Hotel", Industry: "hotel", EmployeeCount: 300},
	}

	outcomes, err := pipeline.AnalyzeBatch(context.Background(), campaignID, inputs, 2)
	if err != nil {
		t.Fatalf("AnalyzeBatch: %v", err)
	}
	if outcomes[0].Result == nil || outcomes[0].Result.Tier != domain.TierA {
		t.Fatalf("outcome 0 = %+v, want A-tier success", outcomes[0])
	}

	mu.Lock()
	defer mu.Unlock()
	if len(enqueued) != 1 {
		t.Fatalf("enqueued = %v, want exactly the A-tier prospect", enqueued)
	}
	if want := store.ids["Grand Mesa Casino"]; enqueued[0] != want {
		t.Errorf("enqueued id = %s, want stored id %s", enqueued[0], want)
	}
}

func TestAnalyzePublishesStoredProspect(t *testing.T) {
	fr := &fakeResearch{reports: map[string]research.Report{
		"Grand Mesa Casino": {
			Signals: []domain.IntentSignal{
				{Category: domain.SignalHiring, Detail: "hiring energy manager", Confidence: 90},
			},
			UrgencyScore: 60,
		},
	}}
	log := logger.New("test")
	bus := &capturingBus{}
	store := &fakeStore{}
	pipeline := NewPipeline(newTestAnalyzer(t, fr), store, bus, log)

	campaignID := uuid.New()
	if _, err := pipeline.Analyze(context.Background(), campaignID, domain.ProfileInput{
		CompanyName: "Grand Mesa Casino", Industry: "casino", EmployeeCount: 5000,
	}); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	analyzed, ok := bus.published[0].(events.ProspectAnalyzed)
	if !ok {
		t.Fatalf("published %T, want ProspectAnalyzed", bus.published[0])
	}
	if analyzed.ProspectID == uuid.Nil {
		t.Error("ProspectID not set")
	}
	if analyzed.CampaignID != campaignID {
		t.Errorf("CampaignID = %s, want %s", analyzed.CampaignID, campaignID)
	}

	// Ephemeral analyses have no stored row to reference and publish nothing.
	if _, err := pipeline.Analyze(context.Background(), uuid.Nil, domain.ProfileInput{
		CompanyName: "Grand Mesa Casino", Industry: "casino", EmployeeCount: 5000,
	}); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(bus.published) != 1 {
		t.Errorf("published %d events after ephemeral analysis, want still 1", len(bus.published))
	}
}

type capturingBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (b *capturingBus) Publish(ctx context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, e)
}

func (b *capturingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *capturingBus) Subscribe(eventName string, h events.Handler) {}

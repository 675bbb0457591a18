package service

import (
	"context"
	"strings"
	"testing"

	agents "tune_outbound_backend/internal/agents/domain"
	"tune_outbound_backend/platform/apperr"
	"tune_outbound_backend/platform/logger"
)

type fakeLLM struct {
	responses map[string]string
	calls     int
}

func (f *fakeLLM) Complete(_ context.Context, prompt string, _ int64) (string, error) {
	f.calls++
	for marker, resp := range f.responses {
		if strings.Contains(prompt, marker) {
			return resp, nil
		}
	}
	return "no json here", nil
}

type fakeStore struct {
	profiles map[string]agents.Profile
	upserts  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{profiles: make(map[string]agents.Profile)}
}

func (f *fakeStore) Upsert(_ context.Context, p agents.Profile) error {
	f.upserts++
	f.profiles[p.Industry] = p
	return nil
}

func (f *fakeStore) Get(_ context.Context, industry string) (agents.Profile, error) {
	p, ok := f.profiles[industry]
	if !ok {
		return agents.Profile{}, apperr.NotFound("industry agent not found")
	}
	return p, nil
}

func (f *fakeStore) Exists(_ context.Context, industry string) (bool, error) {
	_, ok := f.profiles[industry]
	return ok, nil
}

func TestBuildAssemblesProfile(t *testing.T) {
	llm := &fakeLLM{responses: map[string]string{
		"buyer personas": "```json\n" + `{"personas":[{"persona_type":"cfo","typical_titles":["CFO"]}],
			"value_props_by_persona":{"cfo":{"headline":"cash flow positive in year one"}}}` + "\n```",
		"intent signals": "```json\n" + `{"intent_signals":{"hiring_signals":["energy manager posting"]},
			"urgency_triggers":["rate hike"],"savings_benchmarks":{"typical_savings_pct":8.59}}` + "\n```",
		"email sequence": "```json\n" + `{"email_sequences":{"default":[{"touch_number":1,"goal":"reply","max_words":120}]}}` + "\n```",
	}}
	store := newFakeStore()
	b := NewBuilder(llm, store, NewCache(), logger.New("test"))

	p, err := b.Build(context.Background(), " Casino ")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if p.Industry != "casino" {
		t.Errorf("Industry = %q, want normalized casino", p.Industry)
	}
	if len(p.Personas) != 1 || p.Personas[0].PersonaType != "cfo" {
		t.Errorf("Personas = %+v", p.Personas)
	}
	if p.SavingsBenchmarks["typical_savings_pct"] != 8.59 {
		t.Errorf("SavingsBenchmarks = %v", p.SavingsBenchmarks)
	}
	if len(p.EmailFrameworks["default"]) != 1 {
		t.Errorf("EmailFrameworks = %v", p.EmailFrameworks)
	}
	if store.upserts != 1 {
		t.Errorf("upserts = %d, want 1", store.upserts)
	}
}

func TestBuildFallsBackOnUnparseableSections(t *testing.T) {
	llm := &fakeLLM{responses: map[string]string{}}
	b := NewBuilder(llm, newFakeStore(), NewCache(), logger.New("test"))

	p, err := b.Build(context.Background(), "hotel")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(p.Personas) == 0 {
		t.Error("expected default personas")
	}
	if len(p.EmailFrameworks["default"]) != 5 {
		t.Errorf("got %d default touches, want 5", len(p.EmailFrameworks["default"]))
	}
	if len(p.UrgencyTriggers) == 0 {
		t.Error("expected default urgency triggers")
	}
}

func TestGetUsesCacheThenStore(t *testing.T) {
	store := newFakeStore()
	store.profiles["casino"] = agents.Profile{Industry: "casino", Name: "stored"}
	cache := NewCache()
	b := NewBuilder(&fakeLLM{}, store, cache, logger.New("test"))

	p, err := b.Get(context.Background(), "casino")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Name != "stored" {
		t.Errorf("Name = %q", p.Name)
	}
	if _, ok := cache.Get("casino"); !ok {
		t.Error("store hit should backfill cache")
	}

	if _, err := b.Get(context.Background(), "unknown"); apperr.GetKind(err) != apperr.KindNotFound {
		t.Errorf("kind = %v, want not found", apperr.GetKind(err))
	}
}

func TestStatus(t *testing.T) {
	store := newFakeStore()
	b := NewBuilder(&fakeLLM{}, store, NewCache(), logger.New("test"))

	status, err := b.Status(context.Background(), "casino")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status != agents.StatusMissing {
		t.Errorf("status = %v, want missing", status)
	}

	store.profiles["casino"] = agents.Profile{Industry: "casino"}
	status, err = b.Status(context.Background(), "casino")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status != agents.StatusReady {
		t.Errorf("status = %v, want ready", status)
	}
}

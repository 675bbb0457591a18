package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"tune_outbound_backend/internal/prospects/domain"
	"tune_outbound_backend/internal/prospects/research"
	"tune_outbound_backend/platform/apperr"
	"tune_outbound_backend/platform/config"
	"tune_outbound_backend/platform/logger"
)

type fakeResearch struct {
	mu      sync.Mutex
	reports map[string]research.Report
	errs    map[string]error
	delay   time.Duration
	calls   []string
}

func (f *fakeResearch) Research(ctx context.Context, p domain.ProspectProfile) (research.Report, error) {
	f.mu.Lock()
	f.calls = append(f.calls, p.CompanyName)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return research.Report{}, apperr.Upstream("research timed out", ctx.Err())
		}
	}
	if err, ok := f.errs[p.CompanyName]; ok {
		return research.Report{}, err
	}
	if r, ok := f.reports[p.CompanyName]; ok {
		return r, nil
	}
	return research.Report{UrgencyScore: 50}, nil
}

func newTestAnalyzer(t *testing.T, fr *fakeResearch) *Analyzer {
	t.Helper()
	log := logger.New("test")
	scoring := config.ScoringConfig{Weights: config.DefaultScoreWeights(), TierAMin: 75, TierBMin: 60}
	a, err := NewAnalyzer(fr, config.DefaultBenchmarks(), scoring, log)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	return a
}

func TestNewAnalyzerRejectsBadWeights(t *testing.T) {
	log := logger.New("test")
	bad := config.ScoringConfig{
		Weights:  config.ScoreWeights{Intent: 0.5, TechnicalFit: 0.5, Urgency: 0.5},
		TierAMin: 75, TierBMin: 60,
	}
	_, err := NewAnalyzer(&fakeResearch{}, config.DefaultBenchmarks(), bad, log)
	if apperr.GetKind(err) != apperr.KindConfiguration {
		t.Fatalf("kind = %v, want configuration", apperr.GetKind(err))
	}
}

func TestAnalyzeCasinoEndToEnd(t *testing.T) {
	fr := &fakeResearch{reports: map[string]research.Report{
		"Grand Mesa Casino": {
			Signals: []domain.IntentSignal{
				{Category: domain.SignalHiring, Detail: "hiring energy manager", Confidence: 90},
				{Category: domain.SignalExpansion, Detail: "new tower announced", Confidence: 80},
			},
			UrgencyScore:          60,
			PersonalizationPoints: []string{"new tower announced"},
		},
	}}
	a := newTestAnalyzer(t, fr)

	result, err := a.Analyze(context.Background(), domain.ProfileInput{
		CompanyName:   "Grand Mesa Casino",
		Industry:      "casino",
		EmployeeCount: 5000,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.Projection.AnnualSavings != 1_288_500 {
		t.Errorf("AnnualSavings = %v, want 1288500", result.Projection.AnnualSavings)
	}
	// intent: avg 85 * 0.7 + 10 = 69.5; techfit 90; urgency 60;
	// persona 70; account value 100.
	// composite = 24.325 + 22.5 + 9 + 14 + 5 = 74.8 -> tier B
	if result.Scores.Composite < 74.7 || result.Scores.Composite > 74.9 {
		t.Errorf("Composite = %v, want ~74.8", result.Scores.Composite)
	}
	if result.Tier != domain.TierB {
		t.Errorf("Tier = %v, want B", result.Tier)
	}
	if len(result.Personalization) != 1 {
		t.Errorf("Personalization = %v", result.Personalization)
	}
	if result.AnalyzedAt.IsZero() {
		t.Error("AnalyzedAt not set")
	}
}

func TestAnalyzePropagatesValidation(t *testing.T) {
	fr := &fakeResearch{}
	a := newTestAnalyzer(t, fr)

	_, err := a.Analyze(context.Background(), domain.ProfileInput{})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want validation", apperr.GetKind(err))
	}
	if len(fr.calls) != 0 {
		t.Error("research should not run for invalid input")
	}
}

func TestAnalyzePropagatesUpstream(t *testing.T) {
	fr := &fakeResearch{errs: map[string]error{
		"Flaky Co": apperr.Upstream("synthesis failed", errors.New("boom")),
	}}
	a := newTestAnalyzer(t, fr)

	_, err := a.Analyze(context.Background(), domain.ProfileInput{CompanyName: "Flaky Co"})
	if apperr.GetKind(err) != apperr.KindUpstream {
		t.Fatalf("kind = %v, want upstream", apperr.GetKind(err))
	}
	if !strings.Contains(err.Error(), "synthesis failed") {
		t.Errorf("err = %v", err)
	}
}

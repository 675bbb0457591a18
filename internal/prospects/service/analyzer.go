// Package service orchestrates prospect analysis: profile normalization,
// web research, savings projection, scoring and tiering.
package service

import (
	"context"
	"time"

	"tune_outbound_backend/internal/prospects/domain"
	"tune_outbound_backend/internal/prospects/research"
	"tune_outbound_backend/platform/config"
	"tune_outbound_backend/platform/logger"
)

// Persona quality defaults to a neutral-positive score until CRM
// enrichment carries real persona data.
const defaultPersonaQuality = 70.0

// ResearchEngine produces intent intelligence for a prospect.
type ResearchEngine interface {
	Research(ctx context.Context, p domain.ProspectProfile) (research.Report, error)
}

// Analyzer runs the full analysis pipeline for one prospect.
type Analyzer struct {
	research   ResearchEngine
	benchmarks config.Benchmarks
	scoring    config.ScoringConfig
	log        *logger.Logger
}

// NewAnalyzer wires the analyzer. The scoring config must already be
// validated; construction fails fast otherwise.
func NewAnalyzer(research ResearchEngine, benchmarks config.Benchmarks, scoring config.ScoringConfig, log *logger.Logger) (*Analyzer, error) {
	if err := scoring.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{
		research:   research,
		benchmarks: benchmarks,
		scoring:    scoring,
		log:        log,
	}, nil
}

// Analyze normalizes the input, researches intent, projects savings and
// scores the prospect. Validation failures and research failures carry
// their apperr kind for the batch failure taxonomy.
func (a *Analyzer) Analyze(ctx context.Context, in domain.ProfileInput) (domain.AnalysisResult, error) {
	profile, err := domain.NewProfile(in)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	report, err := a.research.Research(ctx, profile)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	benchmark := a.benchmarks.For(profile.Industry)
	projection, err := domain.Project(profile, benchmark.SavingsPercentage)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	scores := domain.ComputeScores(domain.SubScores{
		Intent:         domain.AggregateIntent(report.Signals),
		TechnicalFit:   domain.TechnicalFitScore(profile, projection),
		Urgency:        report.UrgencyScore,
		PersonaQuality: defaultPersonaQuality,
		AccountValue:   domain.AccountValueScore(projection),
	}, a.scoring.Weights)

	result := domain.AnalysisResult{
		Profile:              profile,
		Projection:           projection,
		Signals:              report.Signals,
		Scores:               scores,
		Tier:                 domain.TierFor(scores.Composite, a.scoring),
		Personalization:      report.PersonalizationPoints,
		RecommendedMessaging: report.RecommendedMessaging,
		AnalyzedAt:           time.Now().UTC(),
	}

	a.log.Info("prospect analyzed",
		"company", profile.CompanyName,
		"tier", result.Tier,
		"composite", scores.Composite,
		"annualSavings", projection.AnnualSavings,
	)
	return result, nil
}

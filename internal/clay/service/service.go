// Package service maps analyzed prospects onto Clay table rows and turns
// Clay enrichment callbacks into analyses.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"tune_outbound_backend/internal/clay/client"
	"tune_outbound_backend/internal/prospects/domain"
	prospectrepo "tune_outbound_backend/internal/prospects/repository"
	"tune_outbound_backend/platform/apperr"
	"tune_outbound_backend/platform/logger"
)

// API is the Clay client surface the service needs.
type API interface {
	ListRows(ctx context.Context, tableID string, limit, offset int) ([]client.Row, error)
	GetRow(ctx context.Context, tableID, rowID string) (client.Row, error)
	CreateRow(ctx context.Context, tableID string, fields map[string]any) (client.Row, error)
	UpdateRow(ctx context.Context, tableID, rowID string, fields map[string]any) (client.Row, error)
}

// Analyzer runs a prospect through the analysis pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, campaignID uuid.UUID, in domain.ProfileInput) (domain.AnalysisResult, error)
}

// ProspectLister reads a campaign's stored prospects.
type ProspectLister interface {
	ListByCampaign(ctx context.Context, campaignID uuid.UUID, tier string) ([]prospectrepo.Prospect, error)
}

// Service writes analysis results into Clay and reacts to its webhooks.
type Service struct {
	api       API
	analyzer  Analyzer
	prospects ProspectLister
	log       *logger.Logger
}

// NewService creates a new Clay integration service.
func NewService(clayAPI API, analyzer Analyzer, prospects ProspectLister, log *logger.Logger) *Service {
	return &Service{api: clayAPI, analyzer: analyzer, prospects: prospects, log: log}
}

// SyncReport summarizes one score write-back run.
type SyncReport struct {
	TableID string   `json:"tableId"`
	Written int      `json:"written"`
	Failed  []string `json:"failed,omitempty"`
}

// SyncCampaign writes every analyzed prospect of a campaign into a Clay
// table as flat score columns. Row failures are collected, not fatal.
func (s *Service) SyncCampaign(ctx context.Context, tableID string, campaignID uuid.UUID) (SyncReport, error) {
	prospects, err := s.prospects.ListByCampaign(ctx, campaignID, "")
	if err != nil {
		return SyncReport{}, err
	}

	report := SyncReport{TableID: tableID}
	for _, p := range prospects {
		if _, err := s.api.CreateRow(ctx, tableID, analysisFields(p)); err != nil {
			s.log.Error("clay row write failed", "company", p.CompanyName, "error", err)
			report.Failed = append(report.Failed, p.CompanyName)
			continue
		}
		report.Written++
	}

	s.log.Info("clay sync complete", "table_id", tableID,
		"written", report.Written, "failed", len(report.Failed))
	return report, nil
}

// WriteAnalysis updates one Clay row with a prospect's scores.
func (s *Service) WriteAnalysis(ctx context.Context, tableID, rowID string, result domain.AnalysisResult) error {
	_, err := s.api.UpdateRow(ctx, tableID, rowID, resultFields(result))
	return err
}

// WebhookPayload is the enrichment-complete callback Clay sends.
type WebhookPayload struct {
	TableID string         `json:"table_id"`
	RowID   string         `json:"row_id"`
	Data    map[string]any `json:"data"`
}

// WebhookResult reports what the webhook produced.
type WebhookResult struct {
	Company   string  `json:"company"`
	Composite float64 `json:"composite"`
	Tier      string  `json:"tier"`
}

// HandleEnrichedRow analyzes a freshly enriched Clay row and writes the
// scores back to the same row.
func (s *Service) HandleEnrichedRow(ctx context.Context, payload WebhookPayload) (WebhookResult, error) {
	input, err := inputFromFields(payload.Data)
	if err != nil {
		return WebhookResult{}, err
	}

	result, err := s.analyzer.Analyze(ctx, uuid.Nil, input)
	if err != nil {
		return WebhookResult{}, err
	}

	if payload.TableID != "" && payload.RowID != "" {
		if err := s.WriteAnalysis(ctx, payload.TableID, payload.RowID, result); err != nil {
			return WebhookResult{}, err
		}
	}

	return WebhookResult{
		Company:   result.Profile.CompanyName,
		Composite: result.Scores.Composite,
		Tier:      string(result.Tier),
	}, nil
}

// inputFromFields maps Clay enrichment columns onto a profile input,
// accepting the column aliases different enrichment providers use.
func inputFromFields(fields map[string]any) (domain.ProfileInput, error) {
	name := stringField(fields, "company_name", "name")
	if name == "" {
		return domain.ProfileInput{}, apperr.Validation("webhook row has no company name")
	}
	return domain.ProfileInput{
		CompanyName:       name,
		Domain:            stringField(fields, "domain", "website"),
		Industry:          stringField(fields, "industry"),
		EmployeeCount:     intField(fields, "employee_count", "employees"),
		SquareFootage:     floatField(fields, "square_footage", "estimated_sqft"),
		AnnualEnergySpend: floatField(fields, "annual_energy_spend", "energy_spend"),
		EstimatedRevenue:  floatField(fields, "revenue", "estimated_revenue"),
		Headquarters:      stringField(fields, "headquarters", "hq_location"),
		LinkedInURL:       stringField(fields, "linkedin_url", "linkedin_company_url"),
	}, nil
}

func analysisFields(p prospectrepo.Prospect) map[string]any {
	signals, _ := json.Marshal(p.Signals)
	personalization, _ := json.Marshal(p.Personalization)
	return map[string]any{
		"company_name":           p.CompanyName,
		"domain":                 p.Domain,
		"industry":               p.Industry,
		"employee_count":         p.EmployeeCount,
		"composite_score":        p.CompositeScore,
		"priority_tier":          p.PriorityTier,
		"intent_score":           p.Scores.Intent,
		"technical_fit_score":    p.Scores.TechnicalFit,
		"urgency_score":          p.Scores.Urgency,
		"annual_savings_dollars": p.AnnualSavings,
		"payback_months":         p.PaybackMonths,
		"intent_signals_found":   string(signals),
		"personalization_points": string(personalization),
		"analysis_status":        "analyzed",
		"analyzed_at":            p.AnalyzedAt.Format(time.RFC3339),
	}
}

func resultFields(result domain.AnalysisResult) map[string]any {
	signals, _ := json.Marshal(result.Signals)
	personalization, _ := json.Marshal(result.Personalization)
	return map[string]any{
		"composite_score":        result.Scores.Composite,
		"priority_tier":          string(result.Tier),
		"intent_score":           result.Scores.Intent,
		"technical_fit_score":    result.Scores.TechnicalFit,
		"urgency_score":          result.Scores.Urgency,
		"annual_savings_dollars": result.Projection.AnnualSavings,
		"savings_percentage":     result.Projection.SavingsPercentage,
		"payback_months":         result.Projection.PaybackMonths,
		"five_year_value":        result.Projection.FiveYearSavings,
		"intent_signals_found":   string(signals),
		"personalization_points": string(personalization),
		"analysis_status":        "analyzed",
		"analyzed_at":            result.AnalyzedAt.Format(time.RFC3339),
	}
}

func stringField(fields map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := fields[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func intField(fields map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := fields[key].(type) {
		case float64:
			return int(v)
		case int:
			return v
		}
	}
	return 0
}

func floatField(fields map[string]any, keys ...string) float64 {
	for _, key := range keys {
		switch v := fields[key].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
	}
	return 0
}

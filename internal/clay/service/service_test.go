package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"tune_outbound_backend/internal/clay/client"
	"tune_outbound_backend/internal/prospects/domain"
	prospectrepo "tune_outbound_backend/internal/prospects/repository"
	"tune_outbound_backend/platform/apperr"
	"tune_outbound_backend/platform/logger"
)

type fakeAPI struct {
	created []map[string]any
	updated map[string]map[string]any
	failFor string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{updated: map[string]map[string]any{}}
}

func (f *fakeAPI) ListRows(context.Context, string, int, int) ([]client.Row, error) {
	return nil, nil
}

func (f *fakeAPI) GetRow(context.Context, string, string) (client.Row, error) {
	return client.Row{}, nil
}

func (f *fakeAPI) CreateRow(_ context.Context, _ string, fields map[string]any) (client.Row, error) {
	if name, _ := fields["company_name"].(string); name == f.failFor {
		return client.Row{}, apperr.Upstream("clay status 500", nil)
	}
	f.created = append(f.created, fields)
	return client.Row{ID: "row-1", Fields: fields}, nil
}

func (f *fakeAPI) UpdateRow(_ context.Context, _ string, rowID string, fields map[string]any) (client.Row, error) {
	f.updated[rowID] = fields
	return client.Row{ID: rowID, Fields: fields}, nil
}

type fakeAnalyzer struct {
	lastInput domain.ProfileInput
	err       error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ uuid.UUID, in domain.ProfileInput) (domain.AnalysisResult, error) {
	f.lastInput = in
	if f.err != nil {
		return domain.AnalysisResult{}, f.err
	}
	return domain.AnalysisResult{
		Profile:    domain.ProspectProfile{CompanyName: in.CompanyName, Industry: in.Industry},
		Projection: domain.SavingsProjection{AnnualSavings: 120000, FiveYearSavings: 600000},
		Scores:     domain.ScoreSet{Composite: 81.5},
		Tier:       domain.TierA,
		AnalyzedAt: time.Now().UTC(),
	}, nil
}

type fakeProspects struct {
	rows []prospectrepo.Prospect
}

func (f *fakeProspects) ListByCampaign(context.Context, uuid.UUID, string) ([]prospectrepo.Prospect, error) {
	return f.rows, nil
}

func TestSyncCampaignCollectsRowFailures(t *testing.T) {
	api := newFakeAPI()
	api.failFor = "Bad Casino"
	prospects := &fakeProspects{rows: []prospectrepo.Prospect{
		{CompanyName: "Grand Casino", PriorityTier: "A", CompositeScore: 82},
		{CompanyName: "Bad Casino", PriorityTier: "B", CompositeScore: 64},
		{CompanyName: "River Casino", PriorityTier: "C", CompositeScore: 41},
	}}
	svc := NewService(api, &fakeAnalyzer{}, prospects, logger.New("test"))

	report, err := svc.SyncCampaign(context.Background(), "tbl_1", uuid.New())
	if err != nil {
		t.Fatalf("SyncCampaign: %v", err)
	}
	if report.Written != 2 {
		t.Errorf("written = %d, want 2", report.Written)
	}
	if len(report.Failed) != 1 || report.Failed[0] != "Bad Casino" {
		t.Errorf("failed = %v, want [Bad Casino]", report.Failed)
	}
	if got := api.created[0]["priority_tier"]; got != "A" {
		t.Errorf("first row tier = %v, want A", got)
	}
}

func TestHandleEnrichedRowWritesScoresBack(t *testing.T) {
	api := newFakeAPI()
	analyzer := &fakeAnalyzer{}
	svc := NewService(api, analyzer, &fakeProspects{}, logger.New("test"))

	result, err := svc.HandleEnrichedRow(context.Background(), WebhookPayload{
		TableID: "tbl_1",
		RowID:   "row_9",
		Data: map[string]any{
			"company_name": "Grand Casino",
			"industry":     "casino",
			"employees":    float64(5000),
			"website":      "grandcasino.com",
		},
	})
	if err != nil {
		t.Fatalf("HandleEnrichedRow: %v", err)
	}
	if result.Tier != "A" || result.Composite != 81.5 {
		t.Errorf("result = %+v, want tier A composite 81.5", result)
	}
	if analyzer.lastInput.EmployeeCount != 5000 || analyzer.lastInput.Domain != "grandcasino.com" {
		t.Errorf("analyzer input = %+v, want aliased fields mapped", analyzer.lastInput)
	}

	fields, ok := api.updated["row_9"]
	if !ok {
		t.Fatal("row_9 was not updated")
	}
	if fields["composite_score"] != 81.5 || fields["priority_tier"] != "A" {
		t.Errorf("written fields = %v, want flat score columns", fields)
	}
}

func TestHandleEnrichedRowRejectsNamelessRow(t *testing.T) {
	svc := NewService(newFakeAPI(), &fakeAnalyzer{}, &fakeProspects{}, logger.New("test"))

	_, err := svc.HandleEnrichedRow(context.Background(), WebhookPayload{
		Data: map[string]any{"industry": "casino"},
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Errorf("kind = %v, want validation", apperr.GetKind(err))
	}
}

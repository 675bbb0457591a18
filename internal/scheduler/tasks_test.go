package scheduler

import (
	"testing"

	"tune_outbound_backend/internal/prospects/domain"
)

func TestAnalyzeBatchTaskRoundTrip(t *testing.T) {
	payload := AnalyzeBatchPayload{
		CampaignID:  "3d60cc14-9a07-4df3-8f5d-9a2febc62c1e",
		Concurrency: 5,
		Prospects: []domain.ProfileInput{
			{CompanyName: "Acme", Industry: "casino", EmployeeCount: 5000},
		},
	}

	task, err := NewAnalyzeBatchTask(payload)
	if err != nil {
		t.Fatalf("NewAnalyzeBatchTask: %v", err)
	}
	if task.Type() != TaskAnalyzeBatch {
		t.Errorf("type = %q, want %q", task.Type(), TaskAnalyzeBatch)
	}

	got, err := ParseAnalyzeBatchPayload(task)
	if err != nil {
		t.Fatalf("ParseAnalyzeBatchPayload: %v", err)
	}
	if got.CampaignID != payload.CampaignID || got.Concurrency != 5 {
		t.Errorf("payload = %+v", got)
	}
	if len(got.Prospects) != 1 || got.Prospects[0].CompanyName != "Acme" {
		t.Errorf("prospects = %+v", got.Prospects)
	}
}

func TestGenerateSequenceTaskRoundTrip(t *testing.T) {
	task, err := NewGenerateSequenceTask(GenerateSequencePayload{ProspectID: "p-1", Mode: "skip_cold"})
	if err != nil {
		t.Fatalf("NewGenerateSequenceTask: %v", err)
	}

	got, err := ParseGenerateSequencePayload(task)
	if err != nil {
		t.Fatalf("ParseGenerateSequencePayload: %v", err)
	}
	if got.ProspectID != "p-1" || got.Mode != "skip_cold" {
		t.Errorf("payload = %+v", got)
	}
}

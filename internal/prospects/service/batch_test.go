package service

import (
	"context"
	"errors"
	"testing"

	"tune_outbound_backend/internal/prospects/domain"
	"tune_outbound_backend/platform/apperr"
)

func TestAnalyzeBatchPartialFailure(t *testing.T) {
	fr := &fakeResearch{errs: map[string]error{
		"Flaky Co": apperr.Upstream("research timed out", context.DeadlineExceeded),
	}}
	a := newTestAnalyzer(t, fr)

	inputs := []domain.ProfileInput{
		{CompanyName: "Alpha", Industry: "hotel", EmployeeCount: 300},
		{CompanyName: "Flaky Co", Industry: "hotel", EmployeeCount: 300},
		{CompanyName: ""}, // invalid
		{CompanyName: "Delta", Industry: "hospital", EmployeeCount: 800},
	}

	outcomes, err := a.AnalyzeBatch(context.Background(), inputs, 2)
	if err != nil {
		t.Fatalf("AnalyzeBatch: %v", err)
	}
	if len(outcomes) != len(inputs) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(inputs))
	}

	for i, o := range outcomes {
		if o.Index != i {
			t.Errorf("outcome %d has index %d", i, o.Index)
		}
	}

	if outcomes[0].Result == nil || outcomes[0].Result.Profile.CompanyName != "Alpha" {
		t.Errorf("outcome 0 = %+v, want Alpha success", outcomes[0])
	}
	if outcomes[1].Failure == nil || outcomes[1].Failure.Reason != FailureUpstream {
		t.Errorf("outcome 1 = %+v, want upstream failure", outcomes[1])
	}
	if outcomes[2].Failure == nil || outcomes[2].Failure.Reason != FailureInvalidInput {
		t.Errorf("outcome 2 = %+v, want invalid input", outcomes[2])
	}
	if outcomes[3].Result == nil || outcomes[3].Result.Profile.CompanyName != "Delta" {
		t.Errorf("outcome 3 = %+v, want Delta success", outcomes[3])
	}
}

func TestAnalyzeBatchEmptyInput(t *testing.T) {
	a := newTestAnalyzer(t, &fakeResearch{})

	outcomes, err := a.AnalyzeBatch(context.Background(), nil, 0)
	if err != nil {
		t.Fatalf("AnalyzeBatch: %v", err)
	}
	if len(outcomes) != 0 {
		t.Errorf("got %d outcomes, want 0", len(outcomes))
	}
}

func TestAnalyzeBatchDefaultConcurrency(t *testing.T) {
	a := newTestAnalyzer(t, &fakeResearch{})

	inputs := []domain.ProfileInput{
		{CompanyName: "One", Industry: "qsr", EmployeeCount: 50},
		{CompanyName: "Two", Industry: "qsr", EmployeeCount: 50},
	}
	outcomes, err := a.AnalyzeBatch(context.Background(), inputs, 0)
	if err != nil {
		t.Fatalf("AnalyzeBatch: %v", err)
	}
	for i, o := range outcomes {
		if o.Result == nil {
			t.Errorf("outcome %d failed: %+v", i, o.Failure)
		}
	}
}

func TestAnalyzeBatchUnknownFailure(t *testing.T) {
	fr := &fakeResearch{errs: map[string]error{
		"Weird Co": errors.New("something unexpected"),
	}}
	a := newTestAnalyzer(t, fr)

	outcomes, err := a.AnalyzeBatch(context.Background(), []domain.ProfileInput{{CompanyName: "Weird Co"}}, 1)
	if err != nil {
		t.Fatalf("AnalyzeBatch: %v", err)
	}
	if outcomes[0].Failure == nil || outcomes[0].Failure.Reason != FailureUnknown {
		t.Errorf("outcome = %+v, want unknown failure", outcomes[0])
	}
}

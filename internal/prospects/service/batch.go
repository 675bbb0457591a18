package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"

	"tune_outbound_backend/internal/prospects/domain"
	"tune_outbound_backend/platform/apperr"
)

// DefaultBatchConcurrency bounds parallel analyses when the caller does
// not specify a limit.
const DefaultBatchConcurrency = 3

// FailureReason classifies why one prospect in a batch failed.
type FailureReason string

const (
	FailureInvalidInput FailureReason = "invalid_input"
	FailureUpstream     FailureReason = "upstream_failure"
	FailureUnknown      FailureReason = "unknown"
)

// Outcome is the per-prospect result slot of a batch. Exactly one of
// Result and Failure is set.
type Outcome struct {
	Index   int                    `json:"index"`
	Company string                 `json:"company"`
	Result  *domain.AnalysisResult `json:"result,omitempty"`
	Failure *Failure               `json:"failure,omitempty"`
}

// Failure carries the taxonomy bucket and message for a failed slot.
type Failure struct {
	Reason  FailureReason `json:"reason"`
	Message string        `json:"message"`
}

// AnalyzeBatch analyzes every input under a bounded concurrency cap.
// The returned slice is index-aligned with the input regardless of
// completion order, and a failed prospect never cancels its siblings.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, inputs []domain.ProfileInput, concurrency int64) ([]Outcome, error) {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	outcomes := make([]Outcome, len(inputs))
	sem := semaphore.NewWeighted(concurrency)

	for i, in := range inputs {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled while waiting; fail the remaining slots.
			for j := i; j < len(inputs); j++ {
				outcomes[j] = Outcome{
					Index:   j,
					Company: inputs[j].CompanyName,
					Failure: &Failure{Reason: FailureUnknown, Message: err.Error()},
				}
			}
			break
		}

		go func(idx int, input domain.ProfileInput) {
			defer sem.Release(1)
			outcomes[idx] = a.analyzeOne(ctx, idx, input)
		}(i, in)
	}

	// Wait for in-flight analyses regardless of cancellation so every
	// slot is settled before the slice is handed back.
	if err := sem.Acquire(context.WithoutCancel(ctx), concurrency); err != nil {
		return outcomes, fmt.Errorf("batch drain interrupted: %w", err)
	}
	sem.Release(concurrency)

	succeeded := 0
	for _, o := range outcomes {
		if o.Result != nil {
			succeeded++
		}
	}
	a.log.Info("batch analysis complete", "total", len(inputs), "succeeded", succeeded)
	return outcomes, nil
}

func (a *Analyzer) analyzeOne(ctx context.Context, idx int, in domain.ProfileInput) Outcome {
	out := Outcome{Index: idx, Company: in.CompanyName}

	result, err := a.Analyze(ctx, in)
	if err != nil {
		out.Failure = &Failure{Reason: classifyFailure(err), Message: err.Error()}
		return out
	}
	out.Result = &result
	return out
}

func classifyFailure(err error) FailureReason {
	switch apperr.GetKind(err) {
	case apperr.KindValidation, apperr.KindBadRequest:
		return FailureInvalidInput
	case apperr.KindUpstream:
		return FailureUpstream
	default:
		return FailureUnknown
	}
}

// Package scheduler defines the asynq task types that carry heavy
// pipeline work off the request path, plus the client that enqueues them.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"tune_outbound_backend/internal/prospects/domain"
)

const TaskAnalyzeBatch = "prospects.analyze_batch"

const TaskGenerateSequence = "content.generate_sequence"

// AnalyzeBatchPayload carries one batch of prospects to analyze and the
// campaign they belong to.
type AnalyzeBatchPayload struct {
	CampaignID  string                `json:"campaignId,omitempty"`
	Concurrency int64                 `json:"concurrency,omitempty"`
	Prospects   []domain.ProfileInput `json:"prospects"`
}

// GenerateSequencePayload asks the worker to generate the email sequence
// for a stored prospect.
type GenerateSequencePayload struct {
	ProspectID string `json:"prospectId"`
	Mode       string `json:"mode,omitempty"`
}

func NewAnalyzeBatchTask(payload AnalyzeBatchPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAnalyzeBatch, data), nil
}

func ParseAnalyzeBatchPayload(task *asynq.Task) (AnalyzeBatchPayload, error) {
	var payload AnalyzeBatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AnalyzeBatchPayload{}, err
	}
	return payload, nil
}

func NewGenerateSequenceTask(payload GenerateSequencePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGenerateSequence, data), nil
}

func ParseGenerateSequencePayload(task *asynq.Task) (GenerateSequencePayload, error) {
	var payload GenerateSequencePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return GenerateSequencePayload{}, err
	}
	return payload, nil
}

package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	content "tune_outbound_backend/internal/content/domain"
	contentsvc "tune_outbound_backend/internal/content/service"
	prospectsvc "tune_outbound_backend/internal/prospects/service"
	"tune_outbound_backend/platform/config"
	"tune_outbound_backend/platform/logger"
)

// Worker consumes queued pipeline tasks: batch prospect analysis and
// per-prospect sequence generation.
type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	pipeline *prospectsvc.Pipeline
	content  *contentsvc.Service
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pipeline *prospectsvc.Pipeline, contentSvc *contentsvc.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetWorkerConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		pipeline: pipeline,
		content:  contentSvc,
		log:      log,
	}

	mux.HandleFunc(TaskAnalyzeBatch, w.handleAnalyzeBatch)
	mux.HandleFunc(TaskGenerateSequence, w.handleGenerateSequence)

	return w, nil
}

func (w *Worker) handleAnalyzeBatch(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAnalyzeBatchPayload(task)
	if err != nil {
		return err
	}

	campaignID := uuid.Nil
	if payload.CampaignID != "" {
		campaignID, err = uuid.Parse(payload.CampaignID)
		if err != nil {
			return err
		}
	}

	outcomes, err := w.pipeline.AnalyzeBatch(ctx, campaignID, payload.Prospects, payload.Concurrency)
	if err != nil {
		return err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Failure != nil {
			failed++
		}
	}

	w.log.Info("batch analysis finished",
		"campaignId", payload.CampaignID,
		"total", len(outcomes),
		"failed", failed,
	)
	return nil
}

func (w *Worker) handleGenerateSequence(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseGenerateSequencePayload(task)
	if err != nil {
		return err
	}

	prospectID, err := uuid.Parse(payload.ProspectID)
	if err != nil {
		return err
	}

	mode := content.Mode(payload.Mode)
	if mode == "" {
		mode = content.ModeStandard
	}

	emails, err := w.content.GenerateForProspect(ctx, prospectID, mode)
	if err != nil {
		return err
	}

	w.log.Info("sequence generated",
		"prospectId", payload.ProspectID,
		"touches", len(emails),
	)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"tune_outbound_backend/internal/agents"
	"tune_outbound_backend/internal/content"
	"tune_outbound_backend/internal/events"
	"tune_outbound_backend/internal/prospects"
	"tune_outbound_backend/internal/scheduler"
	"tune_outbound_backend/platform/ai/claude"
	"tune_outbound_backend/platform/config"
	"tune_outbound_backend/platform/db"
	"tune_outbound_backend/platform/logger"
	"tune_outbound_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	llm, err := claude.New(claude.Config{
		APIKey: cfg.GetAnthropicAPIKey(),
		Model:  cfg.GetAnthropicModel(),
	})
	if err != nil {
		log.Error("failed to initialize claude client", "error", err)
		panic("failed to initialize claude client: " + err.Error())
	}

	benchmarks, err := config.LoadBenchmarks(cfg.BenchmarksPath)
	if err != nil {
		log.Warn("benchmarks file not loaded, using defaults", "path", cfg.BenchmarksPath, "error", err)
		benchmarks = config.DefaultBenchmarks()
	}

	queue, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer queue.Close()

	agentsModule := agents.NewModule(pool, val, llm, log)
	prospectsModule, err := prospects.NewModule(pool, eventBus, val, cfg, benchmarks, llm, queue, log)
	if err != nil {
		log.Error("failed to initialize prospects module", "error", err)
		panic("failed to initialize prospects module: " + err.Error())
	}
	pipeline := prospectsModule.Pipeline()
	contentModule := content.NewModule(pool, eventBus, val, llm, agentsModule.Builder(), pipeline, queue, log)

	// Analyses processed here publish on the in-process bus too, so A-tier
	// prospects still get their sequence queued.
	eventBus.Subscribe(events.ProspectAnalyzed{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		analyzed, ok := event.(events.ProspectAnalyzed)
		if !ok {
			return nil
		}
		if analyzed.Tier != "A" || analyzed.ProspectID == uuid.Nil {
			return nil
		}
		_, err := queue.EnqueueGenerateSequence(ctx, scheduler.GenerateSequencePayload{
			ProspectID: analyzed.ProspectID.String(),
		})
		return err
	}))

	worker, err := scheduler.NewWorker(cfg, pipeline, contentModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	log.Info("worker listening", "queue", cfg.GetAsynqQueueName(), "concurrency", cfg.GetWorkerConcurrency())
	worker.Run(ctx)
	log.Info("worker stopped")
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return fmt.Errorf("%s: %w", name, lastErr)
}

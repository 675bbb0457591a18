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
	authrepo "tune_outbound_backend/internal/auth/repository"
	"tune_outbound_backend/internal/campaigns"
	"tune_outbound_backend/internal/clay"
	"tune_outbound_backend/internal/collateral"
	"tune_outbound_backend/internal/content"
	contentdomain "tune_outbound_backend/internal/content/domain"
	contentrepo "tune_outbound_backend/internal/content/repository"
	"tune_outbound_backend/internal/email"
	"tune_outbound_backend/internal/events"
	apphttp "tune_outbound_backend/internal/http"
	"tune_outbound_backend/internal/http/router"
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
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

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
	log.Info("database connection established")

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

	queue, closeQueue := initQueueClient(cfg, log)
	if closeQueue != nil {
		defer closeQueue()
	}
	// A typed-nil client must not leak into the Enqueuer interface, or the
	// handlers' synchronous fallback never kicks in.
	var enqueuer scheduler.Enqueuer
	if queue != nil {
		enqueuer = queue
	}

	agentsModule := agents.NewModule(pool, val, llm, log)

	prospectsModule, err := prospects.NewModule(pool, eventBus, val, cfg, benchmarks, llm, enqueuer, log)
	if err != nil {
		log.Error("failed to initialize prospects module", "error", err)
		panic("failed to initialize prospects module: " + err.Error())
	}
	pipeline := prospectsModule.Pipeline()

	contentModule := content.NewModule(pool, eventBus, val, llm, agentsModule.Builder(), pipeline, enqueuer, log)
	campaignsModule := campaigns.NewModule(pool, eventBus, val, pipeline, log)

	modules := []apphttp.Module{
		prospectsModule,
		agentsModule,
		contentModule,
		campaignsModule,
	}

	if cfg.IsClayEnabled() {
		clayModule := clay.NewModule(cfg, val, pipeline, pipeline, log)
		modules = append(modules, clayModule)
		log.Info("clay integration enabled", "baseUrl", cfg.GetClayBaseURL())
	} else {
		log.Warn("CLAY_API_KEY not configured; clay sync disabled")
	}

	if cfg.IsMinIOEnabled() {
		collateralModule, err := collateral.NewModule(cfg, eventBus, val, pipeline, log)
		if err != nil {
			log.Error("failed to initialize collateral module", "error", err)
			panic("failed to initialize collateral module: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure collateral bucket", 5, 2*time.Second, func() error {
			return collateralModule.EnsureBucket(ctx)
		}); err != nil {
			log.Error("failed to ensure collateral bucket exists", "error", err)
			panic("failed to ensure collateral bucket exists: " + err.Error())
		}
		modules = append(modules, collateralModule)
		log.Info("collateral storage initialized", "bucket", cfg.GetMinioBucketCollateral())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; savings-report PDFs disabled")
	}

	contentStore := contentrepo.New(pool)
	if cfg.GetEmailEnabled() {
		emailModule, err := email.NewModule(cfg, contentStore, val, log)
		if err != nil {
			log.Error("failed to initialize email module", "error", err)
			panic("failed to initialize email module: " + err.Error())
		}
		modules = append(modules, emailModule)
	} else {
		log.Warn("EMAIL_ENABLED not set; outbound sends disabled")
	}

	// A-tier prospects get a sequence generated as soon as analysis lands.
	wireSequenceOnAnalyzed(eventBus, queue, contentModule, log)

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   pool,
		EventBus: eventBus,
		Keys:     authrepo.New(pool),
		Modules:  modules,
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// wireSequenceOnAnalyzed subscribes the content pipeline to analysis
// completions: freshly analyzed A-tier prospects get their sequence queued
// (or generated inline when no queue is configured).
func wireSequenceOnAnalyzed(bus events.Bus, queue *scheduler.Client, contentModule *content.Module, log *logger.Logger) {
	bus.Subscribe(events.ProspectAnalyzed{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		analyzed, ok := event.(events.ProspectAnalyzed)
		if !ok {
			return nil
		}
		if analyzed.Tier != "A" || analyzed.ProspectID == uuid.Nil {
			return nil
		}

		if queue != nil {
			taskID, err := queue.EnqueueGenerateSequence(ctx, scheduler.GenerateSequencePayload{
				ProspectID: analyzed.ProspectID.String(),
			})
			if err != nil {
				return err
			}
			log.Info("sequence generation queued", "prospectId", analyzed.ProspectID, "taskId", taskID)
			return nil
		}

		emails, err := contentModule.Service().GenerateForProspect(ctx, analyzed.ProspectID, contentdomain.ModeStandard)
		if err != nil {
			return err
		}
		log.Info("sequence generated inline", "prospectId", analyzed.ProspectID, "touches", len(emails))
		return nil
	}))
}

func initQueueClient(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; batch jobs run inline")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
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

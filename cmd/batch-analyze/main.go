// Command batch-analyze scores a JSON list of prospects against a campaign
// and exports the results as CSV for CRM import.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"

	"tune_outbound_backend/internal/events"
	"tune_outbound_backend/internal/prospects/domain"
	"tune_outbound_backend/internal/prospects/repository"
	"tune_outbound_backend/internal/prospects/research"
	"tune_outbound_backend/internal/prospects/service"
	"tune_outbound_backend/platform/ai/claude"
	"tune_outbound_backend/platform/config"
	"tune_outbound_backend/platform/db"
	"tune_outbound_backend/platform/logger"
)

func main() {
	var (
		inputPath   = flag.String("input", "prospects.json", "JSON file holding an array of prospect profiles")
		campaignArg = flag.String("campaign", "", "campaign id to attach results to")
		csvPath     = flag.String("csv", "analysis_results.csv", "CSV export path")
		concurrency = flag.Int64("concurrency", 3, "simultaneous analyses")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting batch analysis", "input", *inputPath)

	campaignID := uuid.Nil
	if *campaignArg != "" {
		campaignID, err = uuid.Parse(*campaignArg)
		if err != nil {
			panic("invalid campaign id: " + err.Error())
		}
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		panic("failed to read input: " + err.Error())
	}
	var inputs []domain.ProfileInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		panic("failed to parse input: " + err.Error())
	}
	if len(inputs) == 0 {
		log.Warn("input holds no prospects, nothing to do")
		return
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

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

	eventBus := events.NewInMemoryBus(log)
	analyzer, err := service.NewAnalyzer(research.New(llm, log), benchmarks, cfg.Scoring, log)
	if err != nil {
		log.Error("failed to initialize analyzer", "error", err)
		panic("failed to initialize analyzer: " + err.Error())
	}
	pipeline := service.NewPipeline(analyzer, repository.New(pool), eventBus, log)

	outcomes, err := pipeline.AnalyzeBatch(ctx, campaignID, inputs, *concurrency)
	if err != nil {
		log.Error("batch analysis failed", "error", err)
		panic("batch analysis failed: " + err.Error())
	}

	var succeeded, failed int
	for _, o := range outcomes {
		if o.Failure != nil {
			failed++
			log.Warn("prospect failed", "company", o.Company, "reason", o.Failure.Reason, "error", o.Failure.Message)
			continue
		}
		succeeded++
		log.Info("prospect analyzed",
			"company", o.Company,
			"composite", o.Result.Scores.Composite,
			"tier", string(o.Result.Tier),
			"annualSavings", o.Result.Projection.AnnualSavings,
		)
	}

	if err := exportCSV(*csvPath, outcomes); err != nil {
		log.Error("failed to export csv", "error", err)
		panic("failed to export csv: " + err.Error())
	}

	log.Info("batch analysis complete",
		"total", len(outcomes),
		"succeeded", succeeded,
		"failed", failed,
		"csv", *csvPath,
	)
}

func exportCSV(path string, outcomes []service.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"company_name", "domain", "composite_score", "priority_tier",
		"intent_score", "technical_fit_score", "urgency_score",
		"annual_savings_dollars", "monthly_savings_dollars",
		"payback_months", "roi_percentage", "carbon_reduction_tons",
		"intent_signals_found", "recommended_messaging", "analyzed_at",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, o := range outcomes {
		if o.Failure != nil {
			continue
		}
		r := o.Result
		row := []string{
			r.Profile.CompanyName,
			r.Profile.Domain,
			num(r.Scores.Composite),
			string(r.Tier),
			num(r.Scores.Intent),
			num(r.Scores.TechnicalFit),
			num(r.Scores.Urgency),
			num(r.Projection.AnnualSavings),
			num(r.Projection.MonthlySavings),
			num(r.Projection.PaybackMonths),
			num(r.Projection.ROIPercentage),
			num(r.Projection.CarbonReductionTons),
			strconv.Itoa(len(r.Signals)),
			r.RecommendedMessaging,
			r.AnalyzedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func num(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

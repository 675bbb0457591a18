// Package research probes a prospect's public web presence for buying
// signals and synthesizes them into structured intelligence via the LLM.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"tune_outbound_backend/internal/prospects/domain"
	"tune_outbound_backend/platform/ai"
	"tune_outbound_backend/platform/ai/llmjson"
	"tune_outbound_backend/platform/apperr"
	"tune_outbound_backend/platform/logger"
)

const (
	requestTimeout = 10 * time.Second
	maxBodyBytes   = 512 << 10
	maxPageText    = 4000
	synthMaxTokens = 3000
)

// probePaths are checked in order on the prospect's domain. Careers pages
// are scanned for hiring signals, the rest feed the synthesis prompt.
var probePaths = []string{"/", "/sustainability", "/esg", "/about", "/news", "/careers", "/jobs"}

// hiringKeywords mark job postings that indicate energy-efficiency intent.
var hiringKeywords = []string{
	"facilities manager",
	"facility manager",
	"energy manager",
	"sustainability manager",
	"sustainability director",
	"director of engineering",
	"chief engineer",
	"esg",
}

// Report is the outcome of researching one prospect.
type Report struct {
	Signals                []domain.IntentSignal `json:"signals"`
	UrgencyScore           float64               `json:"urgency_score"`
	SustainabilityMaturity int                   `json:"sustainability_maturity"`
	PersonalizationPoints  []string              `json:"personalization_points"`
	RecommendedMessaging   string                `json:"recommended_messaging"`
}

// Researcher fetches prospect web pages politely and asks the LLM to turn
// what it finds into intent signals.
type Researcher struct {
	httpClient *http.Client
	llm        ai.TextGenerator
	log        *logger.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	perHost  rate.Limit
}

// New builds a Researcher with a 10 second per-request timeout and a
// one-request-per-second politeness limit per host.
func New(llm ai.TextGenerator, log *logger.Logger) *Researcher {
	return &Researcher{
		httpClient: &http.Client{Timeout: requestTimeout},
		llm:        llm,
		log:        log,
		limiters:   make(map[string]*rate.Limiter),
		perHost:    rate.Limit(1),
	}
}

// Research probes the prospect's site, detects hiring signals and asks the
// LLM to synthesize the collected text. Page fetch failures are tolerated;
// an LLM transport failure is an upstream error for this prospect only.
func (r *Researcher) Research(ctx context.Context, p domain.ProspectProfile) (Report, error) {
	pages := r.collectPages(ctx, p.Domain)

	signals := detectHiringSignals(pages, p.Domain)

	synth, err := r.synthesize(ctx, p, pages, signals)
	if err != nil {
		return Report{}, err
	}

	synth.Signals = append(signals, synth.Signals...)
	return synth, nil
}

type fetchedPage struct {
	Path string
	Text string
}

func (r *Researcher) collectPages(ctx context.Context, host string) []fetchedPage {
	if host == "" {
		return nil
	}

	var pages []fetchedPage
	for _, path := range probePaths {
		text, err := r.fetchPage(ctx, host, path)
		if err != nil {
			continue
		}
		if text == "" {
			continue
		}
		pages = append(pages, fetchedPage{Path: path, Text: text})
	}
	return pages
}

func (r *Researcher) fetchPage(ctx context.Context, host, path string) (string, error) {
	if err := r.limiter(host).Wait(ctx); err != nil {
		return "", err
	}

	base := host
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	url := base + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "TuneOutboundResearch/1.0")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d for %s", resp.StatusCode, url)
	}

	text := extractText(io.LimitReader(resp.Body, maxBodyBytes))
	if len(text) > maxPageText {
		text = text[:maxPageText]
	}
	return text, nil
}

func (r *Researcher) limiter(host string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	lim, ok := r.limiters[host]
	if !ok {
		lim = rate.NewLimiter(r.perHost, 2)
		r.limiters[host] = lim
	}
	return lim
}

// detectHiringSignals scans careers pages for roles that suggest the
// company is investing in facilities or energy work.
func detectHiringSignals(pages []fetchedPage, source string) []domain.IntentSignal {
	var signals []domain.IntentSignal
	for _, page := range pages {
		if page.Path != "/careers" && page.Path != "/jobs" {
			continue
		}
		lower := strings.ToLower(page.Text)
		for _, kw := range hiringKeywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			signals = append(signals, domain.IntentSignal{
				Category:   domain.SignalHiring,
				Detail:     "hiring for " + kw,
				Source:     source + page.Path,
				Confidence: 85,
				ObservedAt: time.Now().UTC(),
			})
		}
	}
	return signals
}

type synthesisPayload struct {
	Signals []struct {
		Category   string  `json:"category"`
		Detail     string  `json:"detail"`
		Confidence float64 `json:"confidence"`
	} `json:"signals"`
	UrgencyScore           float64  `json:"urgency_score"`
	SustainabilityMaturity int      `json:"sustainability_maturity"`
	PersonalizationPoints  []string `json:"key_personalization_points"`
	RecommendedMessaging   string   `json:"recommended_messaging"`
}

func (r *Researcher) synthesize(ctx context.Context, p domain.ProspectProfile, pages []fetchedPage, found []domain.IntentSignal) (Report, error) {
	prompt := r.synthesisPrompt(p, pages, found)

	raw, err := r.llm.Complete(ctx, prompt, synthMaxTokens)
	if err != nil {
		return Report{}, apperr.Upstream("research synthesis failed", err)
	}

	fallback := synthesisPayload{UrgencyScore: 50}
	payload, parsed := llmjson.DecodeOr(raw, fallback)
	if !parsed {
		r.log.ParseFallback("research synthesis", fmt.Errorf("no JSON in response for %s", p.CompanyName))
	}

	report := Report{
		UrgencyScore:           clampScore(payload.UrgencyScore),
		SustainabilityMaturity: payload.SustainabilityMaturity,
		PersonalizationPoints:  payload.PersonalizationPoints,
		RecommendedMessaging:   payload.RecommendedMessaging,
	}
	for _, s := range payload.Signals {
		report.Signals = append(report.Signals, domain.IntentSignal{
			Category:   signalCategory(s.Category),
			Detail:     s.Detail,
			Source:     "synthesis",
			Confidence: clampScore(s.Confidence),
			ObservedAt: time.Now().UTC(),
		})
	}
	return report, nil
}

func (r *Researcher) synthesisPrompt(p domain.ProspectProfile, pages []fetchedPage, found []domain.IntentSignal) string {
	var research strings.Builder
	for _, page := range pages {
		fmt.Fprintf(&research, "PAGE %s:\n%s\n\n", page.Path, page.Text)
	}
	if research.Len() == 0 {
		research.WriteString("No pages could be fetched. Reason from firmographics alone.\n")
	}

	foundJSON, _ := json.Marshal(found)

	return fmt.Sprintf(`Synthesize web research on %s (%s industry, %d employees) and identify buying intent for energy efficiency solutions.

RESEARCH DATA:
%s
SIGNALS ALREADY DETECTED:
%s

Respond with JSON only:
{
  "signals": [{"category": "sustainability_commitment|expansion|hiring|regulatory|financial_trigger|other", "detail": "...", "confidence": 0-100}],
  "urgency_score": 0-100,
  "sustainability_maturity": 1-5,
  "key_personalization_points": ["specific detail 1", "specific detail 2"],
  "recommended_messaging": "what angle to lead with"
}

Be specific with evidence. Score confidence based on strength of evidence.`,
		p.CompanyName, p.Industry, p.EmployeeCount, research.String(), string(foundJSON))
}

func signalCategory(s string) domain.SignalCategory {
	switch domain.SignalCategory(strings.ToLower(strings.TrimSpace(s))) {
	case domain.SignalSustainability:
		return domain.SignalSustainability
	case domain.SignalExpansion:
		return domain.SignalExpansion
	case domain.SignalHiring:
		return domain.SignalHiring
	case domain.SignalRegulatory:
		return domain.SignalRegulatory
	case domain.SignalFinancialTrigger:
		return domain.SignalFinancialTrigger
	default:
		return domain.SignalOther
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

package research

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tune_outbound_backend/internal/prospects/domain"
	"tune_outbound_backend/platform/logger"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Complete(_ context.Context, prompt string, _ int64) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestExtractText(t *testing.T) {
	in := `<html><head><style>body{color:red}</style><script>var x=1;</script></head>
<body><h1>Acme  Corp</h1><p>We are   hiring a
Facilities Manager.</p></body></html>`

	got := extractText(strings.NewReader(in))
	want := "Acme Corp We are hiring a Facilities Manager."
	if got != want {
		t.Errorf("extractText() = %q, want %q", got, want)
	}
}

func TestDetectHiringSignals(t *testing.T) {
	pages := []fetchedPage{
		{Path: "/about", Text: "We love energy manager roles"},
		{Path: "/careers", Text: "Open roles: Facilities Manager, Line Cook"},
	}

	signals := detectHiringSignals(pages, "acme.test")
	if len(signals) != 1 {
		t.Fatalf("got %d signals, want 1", len(signals))
	}
	if signals[0].Category != domain.SignalHiring {
		t.Errorf("category = %v", signals[0].Category)
	}
	if signals[0].Source != "acme.test/careers" {
		t.Errorf("source = %q", signals[0].Source)
	}
	if signals[0].Confidence != 85 {
		t.Errorf("confidence = %v", signals[0].Confidence)
	}
}

func TestResearchSynthesizesSignals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/careers":
			w.Write([]byte("<html><body>Hiring: Sustainability Manager</body></html>"))
		case "/":
			w.Write([]byte("<html><body>Acme runs 40 casinos.</body></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	llm := &fakeLLM{response: "```json\n" + `{
  "signals": [{"category": "expansion", "detail": "opening two properties", "confidence": 80}],
  "urgency_score": 65,
  "sustainability_maturity": 3,
  "key_personalization_points": ["40 casinos"],
  "recommended_messaging": "lead with payback"
}` + "\n```"}

	r := New(llm, logger.New("test"))
	r.httpClient = srv.Client()

	report, err := r.Research(context.Background(), domain.ProspectProfile{
		CompanyName: "Acme", Industry: "casino", EmployeeCount: 900, Domain: srv.URL,
	})
	if err != nil {
		t.Fatalf("Research: %v", err)
	}

	if report.UrgencyScore != 65 {
		t.Errorf("UrgencyScore = %v, want 65", report.UrgencyScore)
	}
	if len(report.Signals) != 2 {
		t.Fatalf("got %d signals, want hiring + expansion", len(report.Signals))
	}
	if report.Signals[0].Category != domain.SignalHiring {
		t.Errorf("first signal = %v, want hiring", report.Signals[0].Category)
	}
	if report.Signals[1].Category != domain.SignalExpansion {
		t.Errorf("second signal = %v, want expansion", report.Signals[1].Category)
	}
	if len(llm.prompts) != 1 || !strings.Contains(llm.prompts[0], "Acme") {
		t.Errorf("synthesis prompt missing company context")
	}
}

func TestResearchFallsBackOnUnparseableLLM(t *testing.T) {
	llm := &fakeLLM{response: "I could not find anything useful."}

	r := New(llm, logger.New("test"))
	report, err := r.Research(context.Background(), domain.ProspectProfile{CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("Research: %v", err)
	}
	if report.UrgencyScore != 50 {
		t.Errorf("UrgencyScore = %v, want default 50", report.UrgencyScore)
	}
	if len(report.Signals) != 0 {
		t.Errorf("got %d signals, want 0", len(report.Signals))
	}
}

func TestSignalCategoryMapping(t *testing.T) {
	cases := []struct {
		raw  string
		want domain.SignalCategory
	}{
		{"sustainability_commitment", domain.SignalSustainability},
		{"Expansion", domain.SignalExpansion},
		{" hiring ", domain.SignalHiring},
		{"regulatory", domain.SignalRegulatory},
		{"financial_trigger", domain.SignalFinancialTrigger},
		{"other", domain.SignalOther},
		{"something the model invented", domain.SignalOther},
	}
	for _, tc := range cases {
		if got := signalCategory(tc.raw); got != tc.want {
			t.Errorf("signalCategory(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

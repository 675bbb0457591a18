// Package service generates tier-gated outreach sequences with the LLM,
// guided by the industry agent's frameworks.
package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/semaphore"

	agents "tune_outbound_backend/internal/agents/domain"
	agentsvc "tune_outbound_backend/internal/agents/service"
	content "tune_outbound_backend/internal/content/domain"
	"tune_outbound_backend/internal/events"
	"tune_outbound_backend/internal/prospects/domain"
	"tune_outbound_backend/platform/ai"
	"tune_outbound_backend/platform/ai/llmjson"
	"tune_outbound_backend/platform/apperr"
	"tune_outbound_backend/platform/logger"
)

const (
	emailMaxTokens    = 2000
	linkedinMaxTokens = 1000

	defaultBatchConcurrency = 3
)

// AgentSource supplies industry agent profiles.
type AgentSource interface {
	GetOrBuild(ctx context.Context, industry string) (agents.Profile, error)
}

// Generator produces outreach content for analyzed prospects.
type Generator struct {
	llm    ai.TextGenerator
	agents AgentSource
	bus    events.Bus
	log    *logger.Logger
}

// NewGenerator wires the content generator.
func NewGenerator(llm ai.TextGenerator, agentSource AgentSource, bus events.Bus, log *logger.Logger) *Generator {
	return &Generator{llm: llm, agents: agentSource, bus: bus, log: log}
}

// GenerateSequence builds the full email sequence for one analyzed
// prospect. The tier and mode decide how many touches are generated;
// a zero-touch plan returns an empty sequence without an LLM call.
func (g *Generator) GenerateSequence(ctx context.Context, result domain.AnalysisResult, mode content.Mode) ([]content.Email, error) {
	touches := content.TouchCountFor(result.Tier, mode)
	if touches == 0 {
		return nil, nil
	}

	agent, err := g.agents.GetOrBuild(ctx, result.Profile.Industry)
	if err != nil {
		return nil, err
	}
	frameworks := g.frameworksFor(agent)

	emails := make([]content.Email, 0, touches)
	for i := 0; i < touches; i++ {
		framework := frameworks[min(i, len(frameworks)-1)]
		email, err := g.generateEmail(ctx, i+1, framework, result, agent, emails)
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}

	g.bus.Publish(ctx, events.SequenceGenerated{
		BaseEvent:   events.NewBaseEvent(),
		CompanyName: result.Profile.CompanyName,
		Touches:     len(emails),
	})
	return emails, nil
}

// SequenceOutcome is one slot of a batch generation run.
type SequenceOutcome struct {
	Index   int             `json:"index"`
	Company string          `json:"company"`
	Emails  []content.Email `json:"emails,omitempty"`
	Err     string          `json:"error,omitempty"`
}

// GenerateBatch runs sequence generation for a dispatch plan's surviving
// prospects under a bounded concurrency cap. Slots are index-aligned
// with the input and failures never cancel siblings.
func (g *Generator) GenerateBatch(ctx context.Context, results []domain.AnalysisResult, mode content.Mode, concurrency int64) []SequenceOutcome {
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}

	outcomes := make([]SequenceOutcome, len(results))
	sem := semaphore.NewWeighted(concurrency)

	for i, r := range results {
		if err := sem.Acquire(ctx, 1); err != nil {
			for j := i; j < len(results); j++ {
				outcomes[j] = SequenceOutcome{Index: j, Company: results[j].Profile.CompanyName, Err: err.Error()}
			}
			break
		}

		go func(idx int, result domain.AnalysisResult) {
			defer sem.Release(1)
			out := SequenceOutcome{Index: idx, Company: result.Profile.CompanyName}
			emails, err := g.GenerateSequence(ctx, result, mode)
			if err != nil {
				out.Err = err.Error()
			} else {
				out.Emails = emails
			}
			outcomes[idx] = out
		}(i, r)
	}

	if err := sem.Acquire(context.WithoutCancel(ctx), concurrency); err == nil {
		sem.Release(concurrency)
	}
	return outcomes
}

// GenerateLinkedIn writes a connection request and follow-up for the
// prospect's primary persona.
func (g *Generator) GenerateLinkedIn(ctx context.Context, result domain.AnalysisResult, personaType string) (content.LinkedInMessage, error) {
	prompt := fmt.Sprintf(`Generate a LinkedIn connection request message for selling energy filters.

Prospect: %s at %s
Industry: %s
Savings Potential: $%.0f/year

REQUIREMENTS:
- Maximum 300 characters (LinkedIn limit)
- Mention specific value relevant to their industry
- Natural, not salesy
- Give a reason to connect

Respond with JSON only:
{"connection_message": "...", "follow_up_message": "message to send after connection accepted"}`,
		personaType, result.Profile.CompanyName, result.Profile.Industry, result.Projection.AnnualSavings)

	raw, err := g.llm.Complete(ctx, prompt, linkedinMaxTokens)
	if err != nil {
		return content.LinkedInMessage{}, apperr.Upstream("linkedin generation failed", err)
	}

	msg, parsed := llmjson.DecodeOr(raw, content.LinkedInMessage{})
	if !parsed || msg.ConnectionMessage == "" {
		return content.LinkedInMessage{}, apperr.Parse("linkedin message unparseable", nil)
	}
	return msg, nil
}

func (g *Generator) generateEmail(ctx context.Context, touchNumber int, framework agents.EmailFramework, result domain.AnalysisResult, agent agents.Profile, previous []content.Email) (content.Email, error) {
	prompt := g.emailPrompt(touchNumber, framework, result, agent, previous)

	raw, err := g.llm.Complete(ctx, prompt, emailMaxTokens)
	if err != nil {
		return content.Email{}, apperr.Upstream("email generation failed", err)
	}

	fallback := content.Email{
		Subject:             "Follow-up on energy savings opportunity",
		Body:                raw,
		PersonalizationUsed: []string{"company_name"},
		KeyPoints:           []string{"energy savings", "quick payback"},
		ExpectedResponse:    "meeting request",
	}
	email, parsed := llmjson.DecodeOr(raw, fallback)
	if !parsed {
		g.log.ParseFallback("email generation", fmt.Errorf("touch %d for %s", touchNumber, result.Profile.CompanyName))
		email = fallback
	}

	email.TouchNumber = touchNumber
	email.Channel = content.ChannelEmail
	email.QualityScore = content.ScoreQuality(email, result.Profile.CompanyName)
	return email, nil
}

func (g *Generator) frameworksFor(agent agents.Profile) []agents.EmailFramework {
	if fw, ok := agent.EmailFrameworks["default"]; ok && len(fw) > 0 {
		return fw
	}
	for _, fw := range agent.EmailFrameworks {
		if len(fw) > 0 {
			return fw
		}
	}
	return agentsvc.DefaultFrameworks()
}

func (g *Generator) emailPrompt(touchNumber int, framework agents.EmailFramework, result domain.AnalysisResult, agent agents.Profile, previous []content.Email) string {
	var prev strings.Builder
	if len(previous) == 0 {
		prev.WriteString("No previous emails - this is the first touch")
	} else {
		for _, e := range previous {
			fmt.Fprintf(&prev, "Email %d: %s\n", e.TouchNumber, e.Subject)
		}
	}

	valueProp := ""
	if vp, ok := agent.ValueProps["energy_manager"]; ok {
		valueProp = vp.Headline
	} else {
		for _, vp := range agent.ValueProps {
			valueProp = vp.Headline
			break
		}
	}

	return fmt.Sprintf(`Generate a highly effective cold outreach email for energy filters.

CRITICAL REQUIREMENTS:
- This must feel like a 1-to-1 email from a human, NOT a mass campaign
- Use conversational, authentic language
- Reference specific details about their company and industry
- NO generic energy pitches
- Subject line must create curiosity without being salesy
- Keep to %d words maximum
- Use the %s framework

PROSPECT CONTEXT:
Company: %s
Industry: %s
Size: %d employees, ~%.0f sq ft
Current Energy Spend: $%.0f/year

SAVINGS OPPORTUNITY:
- Projected Annual Savings: $%.0f (%.2f%%)
- Payback Period: %.1f months
- 5-Year Value: $%.0f
- Carbon Reduction: %.1f metric tons CO2/year

PERSONALIZATION INTELLIGENCE:
%s

VALUE PROPOSITION:
%s

EMAIL SPECIFICATIONS:
- Touch #%d - Goal: %s
- Tone: %s
- CTA: %s

PREVIOUS EMAILS IN SEQUENCE:
%s

Generate the email as JSON:
{
  "subject": "specific, curiosity-driven subject line",
  "body": "full email body",
  "personalization_used": ["specific element 1", "specific element 2"],
  "key_points": ["main point 1", "main point 2"],
  "expected_response": "what response/action you expect"
}

CRITICAL:
- NO corporate jargon
- Make it feel like I actually researched them specifically
- Use their company name naturally (not "your company")`,
		framework.MaxWords, framework.FrameworkType,
		result.Profile.CompanyName, result.Profile.Industry,
		result.Profile.EmployeeCount, result.Profile.EstimatedSqft, result.Profile.EstimatedEnergySpend,
		result.Projection.AnnualSavings, result.Projection.SavingsPercentage,
		result.Projection.PaybackMonths, result.Projection.FiveYearSavings,
		result.Projection.CarbonReductionTons,
		strings.Join(result.Personalization, "\n"),
		valueProp,
		touchNumber, framework.Goal, framework.Tone, framework.CTA,
		prev.String())
}

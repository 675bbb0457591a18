package service

import (
	"context"

	"github.com/google/uuid"

	content "tune_outbound_backend/internal/content/domain"
	contentrepo "tune_outbound_backend/internal/content/repository"
	"tune_outbound_backend/internal/prospects/domain"
	prospectrepo "tune_outbound_backend/internal/prospects/repository"
	"tune_outbound_backend/platform/logger"
)

// ProspectSource loads stored prospects for content generation.
type ProspectSource interface {
	Get(ctx context.Context, id uuid.UUID) (prospectrepo.Prospect, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID, tier string) ([]prospectrepo.Prospect, error)
}

// ContentStore persists generated sequences.
type ContentStore interface {
	SaveSequence(ctx context.Context, prospectID uuid.UUID, emails []content.Email) error
	ListByProspect(ctx context.Context, prospectID uuid.UUID) ([]contentrepo.StoredEmail, error)
}

// Service composes the generator with prospect lookup and persistence.
type Service struct {
	gen       *Generator
	store     ContentStore
	prospects ProspectSource
	log       *logger.Logger
}

// NewService wires the content service.
func NewService(gen *Generator, store ContentStore, prospects ProspectSource, log *logger.Logger) *Service {
	return &Service{gen: gen, store: store, prospects: prospects, log: log}
}

// GenerateForProspect generates and stores the sequence for one stored
// prospect.
func (s *Service) GenerateForProspect(ctx context.Context, prospectID uuid.UUID, mode content.Mode) ([]content.Email, error) {
	p, err := s.prospects.Get(ctx, prospectID)
	if err != nil {
		return nil, err
	}

	emails, err := s.gen.GenerateSequence(ctx, p.ToAnalysisResult(), mode)
	if err != nil {
		return nil, err
	}
	if len(emails) == 0 {
		return nil, nil
	}

	if err := s.store.SaveSequence(ctx, prospectID, emails); err != nil {
		return nil, err
	}
	return emails, nil
}

// CampaignOutcome pairs a prospect with its generation outcome.
type CampaignOutcome struct {
	ProspectID uuid.UUID `json:"prospectId"`
	Company    string    `json:"company"`
	Touches    int       `json:"touches"`
	Err        string    `json:"error,omitempty"`
}

// GenerateForCampaign generates sequences for every stored prospect of
// a campaign under the tier-gated mode. Failures are per-prospect.
func (s *Service) GenerateForCampaign(ctx context.Context, campaignID uuid.UUID, mode content.Mode, concurrency int64) ([]CampaignOutcome, error) {
	prospects, err := s.prospects.ListByCampaign(ctx, campaignID, "")
	if err != nil {
		return nil, err
	}

	results := make([]domain.AnalysisResult, len(prospects))
	campaign := make([]CampaignOutcome, len(prospects))
	for i, p := range prospects {
		results[i] = p.ToAnalysisResult()
		campaign[i] = CampaignOutcome{ProspectID: p.ID, Company: p.CompanyName}
	}

	outcomes := s.gen.GenerateBatch(ctx, results, mode, concurrency)
	for i, o := range outcomes {
		if o.Err != "" {
			campaign[i].Err = o.Err
			continue
		}
		campaign[i].Touches = len(o.Emails)
		if len(o.Emails) == 0 {
			continue
		}
		if err := s.store.SaveSequence(ctx, prospects[i].ID, o.Emails); err != nil {
			campaign[i].Err = "store sequence: " + err.Error()
		}
	}
	return campaign, nil
}

// SequenceFor returns a prospect's stored sequence.
func (s *Service) SequenceFor(ctx context.Context, prospectID uuid.UUID) ([]contentrepo.StoredEmail, error) {
	return s.store.ListByProspect(ctx, prospectID)
}

// LinkedInFor generates a LinkedIn message pair for a stored prospect.
func (s *Service) LinkedInFor(ctx context.Context, prospectID uuid.UUID, personaType string) (content.LinkedInMessage, error) {
	p, err := s.prospects.Get(ctx, prospectID)
	if err != nil {
		return content.LinkedInMessage{}, err
	}
	return s.gen.GenerateLinkedIn(ctx, p.ToAnalysisResult(), personaType)
}

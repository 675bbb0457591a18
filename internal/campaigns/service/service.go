// Package service coordinates campaign lifecycle and reporting.
package service

import (
	"context"

	"github.com/google/uuid"

	"tune_outbound_backend/internal/campaigns/repository"
	"tune_outbound_backend/internal/events"
	prospectrepo "tune_outbound_backend/internal/prospects/repository"
	"tune_outbound_backend/platform/apperr"
	"tune_outbound_backend/platform/logger"
)

// ProspectLister reads a campaign's stored prospects.
type ProspectLister interface {
	ListByCampaign(ctx context.Context, campaignID uuid.UUID, tier string) ([]prospectrepo.Prospect, error)
}

// Store is the campaign persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, name, industry string) (repository.Campaign, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.Campaign, error)
	List(ctx context.Context) ([]repository.Campaign, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Totals(ctx context.Context, id uuid.UUID) (repository.Totals, error)
	Analytics(ctx context.Context, id uuid.UUID) (repository.Analytics, error)
}

// Overview is a campaign with its live pipeline totals.
type Overview struct {
	repository.Campaign
	Totals repository.Totals `json:"totals"`
}

// Service manages campaigns.
type Service struct {
	store     Store
	prospects ProspectLister
	bus       events.Bus
	log       *logger.Logger
}

// NewService creates a new campaigns service.
func NewService(store Store, prospects ProspectLister, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, prospects: prospects, bus: bus, log: log}
}

// Create registers a campaign and announces it on the event bus.
func (s *Service) Create(ctx context.Context, name, industry string) (repository.Campaign, error) {
	c, err := s.store.Create(ctx, name, industry)
	if err != nil {
		return repository.Campaign{}, err
	}

	s.bus.Publish(ctx, events.CampaignCreated{
		BaseEvent:  events.NewBaseEvent(),
		CampaignID: c.ID,
		Name:       c.Name,
		Industry:   c.Industry,
	})
	s.log.Info("campaign created", "campaign_id", c.ID, "name", c.Name, "industry", c.Industry)
	return c, nil
}

// Get returns a campaign with its current totals.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Overview, error) {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return Overview{}, err
	}
	totals, err := s.store.Totals(ctx, id)
	if err != nil {
		return Overview{}, err
	}
	return Overview{Campaign: c, Totals: totals}, nil
}

// List returns all campaigns.
func (s *Service) List(ctx context.Context) ([]repository.Campaign, error) {
	return s.store.List(ctx)
}

// ProspectsByTier returns a campaign's prospects in one priority tier,
// highest composite first.
func (s *Service) ProspectsByTier(ctx context.Context, id uuid.UUID, tier string) ([]prospectrepo.Prospect, error) {
	switch tier {
	case "A", "B", "C":
	default:
		return nil, apperr.Validation("tier must be A, B or C")
	}
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.prospects.ListByCampaign(ctx, id, tier)
}

// Analytics returns the campaign's aggregated performance view.
func (s *Service) Analytics(ctx context.Context, id uuid.UUID) (repository.Analytics, error) {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return repository.Analytics{}, err
	}
	return s.store.Analytics(ctx, id)
}

// UpdateStatus moves a campaign through its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	switch status {
	case repository.StatusDraft, repository.StatusActive, repository.StatusCompleted:
	default:
		return apperr.Validation("unknown campaign status: " + status)
	}
	return s.store.UpdateStatus(ctx, id, status)
}

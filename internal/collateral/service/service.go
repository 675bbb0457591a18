// Package service renders savings-report collateral for stored prospects.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tune_outbound_backend/internal/collateral/pdf"
	"tune_outbound_backend/internal/collateral/storage"
	"tune_outbound_backend/internal/events"
	prospectrepo "tune_outbound_backend/internal/prospects/repository"
	"tune_outbound_backend/platform/logger"
)

// ProspectSource loads stored prospects.
type ProspectSource interface {
	Get(ctx context.Context, id uuid.UUID) (prospectrepo.Prospect, error)
}

// ObjectStore uploads rendered reports.
type ObjectStore interface {
	PutReport(ctx context.Context, campaign, company string, pdf []byte) (storage.Stored, error)
	PresignGet(ctx context.Context, key string) (storage.Stored, error)
}

// Report is a rendered and stored savings report.
type Report struct {
	ProspectID  uuid.UUID `json:"prospectId"`
	CompanyName string    `json:"companyName"`
	ObjectKey   string    `json:"objectKey"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Service renders savings reports and stores them as collateral.
type Service struct {
	prospects ProspectSource
	store     ObjectStore
	bus       events.Bus
	log       *logger.Logger
}

// NewService creates a new collateral service.
func NewService(prospects ProspectSource, store ObjectStore, bus events.Bus, log *logger.Logger) *Service {
	return &Service{prospects: prospects, store: store, bus: bus, log: log}
}

// RenderSavingsReport builds the PDF for a stored prospect, uploads it and
// returns the download link.
func (s *Service) RenderSavingsReport(ctx context.Context, prospectID uuid.UUID) (Report, error) {
	p, err := s.prospects.Get(ctx, prospectID)
	if err != nil {
		return Report{}, err
	}

	doc, err := pdf.BuildSavingsReport(reportData(p))
	if err != nil {
		return Report{}, err
	}

	stored, err := s.store.PutReport(ctx, p.CampaignID.String(), p.CompanyName, doc)
	if err != nil {
		return Report{}, err
	}

	s.bus.Publish(ctx, events.CollateralRendered{
		BaseEvent:   events.NewBaseEvent(),
		CampaignID:  p.CampaignID,
		CompanyName: p.CompanyName,
		ObjectKey:   stored.ObjectKey,
	})
	s.log.Info("savings report rendered", "prospect_id", prospectID,
		"company", p.CompanyName, "object_key", stored.ObjectKey)

	return Report{
		ProspectID:  prospectID,
		CompanyName: p.CompanyName,
		ObjectKey:   stored.ObjectKey,
		DownloadURL: stored.DownloadURL,
		ExpiresAt:   stored.ExpiresAt,
	}, nil
}

// Link re-presigns the download URL of an already rendered report.
func (s *Service) Link(ctx context.Context, prospectID uuid.UUID) (Report, error) {
	p, err := s.prospects.Get(ctx, prospectID)
	if err != nil {
		return Report{}, err
	}
	stored, err := s.store.PresignGet(ctx, storage.ObjectKey(p.CampaignID.String(), p.CompanyName))
	if err != nil {
		return Report{}, err
	}
	return Report{
		ProspectID:  prospectID,
		CompanyName: p.CompanyName,
		ObjectKey:   stored.ObjectKey,
		DownloadURL: stored.DownloadURL,
		ExpiresAt:   stored.ExpiresAt,
	}, nil
}

func reportData(p prospectrepo.Prospect) pdf.SavingsReportData {
	result := p.ToAnalysisResult()
	return pdf.SavingsReportData{
		CompanyName:    p.CompanyName,
		Industry:       p.Industry,
		PreparedAt:     time.Now().UTC(),
		EnergySpend:    p.EstimatedEnergySpend,
		AnnualSavings:  p.AnnualSavings,
		MonthlySavings: result.Projection.MonthlySavings,
		FiveYearValue:  result.Projection.FiveYearSavings,
		InstallCost:    result.Projection.InstallationCost,
		PaybackMonths:  p.PaybackMonths,
		CarbonTons:     result.Projection.CarbonReductionTons,
		SavingsPct:     result.Projection.SavingsPercentage,
	}
}

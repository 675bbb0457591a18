package service

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"tune_outbound_backend/internal/collateral/storage"
	"tune_outbound_backend/internal/events"
	prospectrepo "tune_outbound_backend/internal/prospects/repository"
	"tune_outbound_backend/platform/apperr"
	"tune_outbound_backend/platform/logger"
)

type fakeProspects struct {
	byID map[uuid.UUID]prospectrepo.Prospect
}

func (f *fakeProspects) Get(_ context.Context, id uuid.UUID) (prospectrepo.Prospect, error) {
	p, ok := f.byID[id]
	if !ok {
		return prospectrepo.Prospect{}, apperr.NotFound("prospect not found")
	}
	return p, nil
}

type fakeStore struct {
	lastKey string
	lastPDF []byte
}

func (f *fakeStore) PutReport(_ context.Context, campaign, company string, pdf []byte) (storage.Stored, error) {
	f.lastKey = storage.ObjectKey(campaign, company)
	f.lastPDF = pdf
	return storage.Stored{
		ObjectKey:   f.lastKey,
		DownloadURL: "https://minio.local/" + f.lastKey,
		ExpiresAt:   time.Now().Add(storage.PresignedURLTTL),
	}, nil
}

func (f *fakeStore) PresignGet(_ context.Context, key string) (storage.Stored, error) {
	return storage.Stored{ObjectKey: key, DownloadURL: "https://minio.local/" + key}, nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func TestRenderSavingsReport(t *testing.T) {
	prospectID := uuid.New()
	campaignID := uuid.New()
	prospects := &fakeProspects{byID: map[uuid.UUID]prospectrepo.Prospect{
		prospectID: {
			ID:                   prospectID,
			CampaignID:           campaignID,
			CompanyName:          "Grand Casino Resort",
			Industry:             "casino",
			EstimatedSqft:        1_000_000,
			EstimatedEnergySpend: 15_000_000,
			AnnualSavings:        1_288_500,
			PaybackMonths:        32.6,
		},
	}}
	store := &fakeStore{}
	bus := &recordingBus{}
	svc := NewService(prospects, store, bus, logger.New("test"))

	report, err := svc.RenderSavingsReport(context.Background(), prospectID)
	if err != nil {
		t.Fatalf("RenderSavingsReport: %v", err)
	}
	if report.CompanyName != "Grand Casino Resort" {
		t.Errorf("company = %q", report.CompanyName)
	}
	wantKey := "collateral/" + campaignID.String() + "/grand_casino_resort.pdf"
	if report.ObjectKey != wantKey {
		t.Errorf("object key = %q, want %q", report.ObjectKey, wantKey)
	}
	if len(store.lastPDF) == 0 || !bytes.HasPrefix(store.lastPDF, []byte("%PDF")) {
		t.Errorf("uploaded %d bytes, want a PDF document", len(store.lastPDF))
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()
	if len(bus.events) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.events))
	}
	rendered, ok := bus.events[0].(events.CollateralRendered)
	if !ok || rendered.ObjectKey != wantKey {
		t.Errorf("event = %+v, want CollateralRendered for %s", bus.events[0], wantKey)
	}
}

func TestRenderSavingsReportMissingProspect(t *testing.T) {
	svc := NewService(&fakeProspects{byID: map[uuid.UUID]prospectrepo.Prospect{}},
		&fakeStore{}, &recordingBus{}, logger.New("test"))

	_, err := svc.RenderSavingsReport(context.Background(), uuid.New())
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Errorf("kind = %v, want not found", apperr.GetKind(err))
	}
}

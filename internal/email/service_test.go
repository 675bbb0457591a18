package email

import (
	"context"
	"testing"

	"github.com/google/uuid"

	content "tune_outbound_backend/internal/content/domain"
	contentrepo "tune_outbound_backend/internal/content/repository"
	"tune_outbound_backend/platform/apperr"
	"tune_outbound_backend/platform/logger"
)

type fakeMailer struct {
	sentTo      string
	sentSubject string
	err         error
}

func (f *fakeMailer) Send(_ context.Context, toAddress, subject, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = toAddress
	f.sentSubject = subject
	return nil
}

type fakeContentStore struct {
	sequence []contentrepo.StoredEmail
	events   map[uuid.UUID][]string
}

func (f *fakeContentStore) ListByProspect(context.Context, uuid.UUID) ([]contentrepo.StoredEmail, error) {
	return f.sequence, nil
}

func (f *fakeContentStore) RecordEvent(_ context.Context, contentID uuid.UUID, eventType string) error {
	if f.events == nil {
		f.events = map[uuid.UUID][]string{}
	}
	f.events[contentID] = append(f.events[contentID], eventType)
	return nil
}

func TestSendTouchRecordsEvent(t *testing.T) {
	contentID := uuid.New()
	store := &fakeContentStore{sequence: []contentrepo.StoredEmail{
		{ID: contentID, Email: content.Email{TouchNumber: 1, Subject: "Energy savings at Grand Casino", Body: "Hi"}},
		{ID: uuid.New(), Email: content.Email{TouchNumber: 2, Subject: "Following up", Body: "Hi again"}},
	}}
	mailer := &fakeMailer{}
	svc := NewService(mailer, store, logger.New("test"))

	delivery, err := svc.SendTouch(context.Background(), uuid.New(), 1, "gm@grandcasino.com")
	if err != nil {
		t.Fatalf("SendTouch: %v", err)
	}
	if delivery.ContentID != contentID || delivery.TouchNumber != 1 {
		t.Errorf("delivery = %+v, want touch 1 of %s", delivery, contentID)
	}
	if mailer.sentTo != "gm@grandcasino.com" || mailer.sentSubject != "Energy savings at Grand Casino" {
		t.Errorf("sent to %q subject %q", mailer.sentTo, mailer.sentSubject)
	}
	if got := store.events[contentID]; len(got) != 1 || got[0] != EventSent {
		t.Errorf("events = %v, want [sent]", got)
	}
}

func TestSendTouchMissingTouch(t *testing.T) {
	store := &fakeContentStore{sequence: []contentrepo.StoredEmail{
		{ID: uuid.New(), Email: content.Email{TouchNumber: 1, Subject: "s", Body: "b"}},
	}}
	svc := NewService(&fakeMailer{}, store, logger.New("test"))

	_, err := svc.SendTouch(context.Background(), uuid.New(), 4, "x@y.com")
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Errorf("kind = %v, want not found", apperr.GetKind(err))
	}
}

func TestSendTouchDeliveryFailureSkipsEvent(t *testing.T) {
	contentID := uuid.New()
	store := &fakeContentStore{sequence: []contentrepo.StoredEmail{
		{ID: contentID, Email: content.Email{TouchNumber: 1, Subject: "s", Body: "b"}},
	}}
	svc := NewService(&fakeMailer{err: apperr.Upstream("smtp send failed", nil)}, store, logger.New("test"))

	_, err := svc.SendTouch(context.Background(), uuid.New(), 1, "x@y.com")
	if apperr.GetKind(err) != apperr.KindUpstream {
		t.Errorf("kind = %v, want upstream", apperr.GetKind(err))
	}
	if len(store.events[contentID]) != 0 {
		t.Errorf("events = %v, want none on failed delivery", store.events[contentID])
	}
}

package email

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	contentrepo "tune_outbound_backend/internal/content/repository"
	"tune_outbound_backend/platform/apperr"
	"tune_outbound_backend/platform/logger"
)

// EventSent is recorded in email_events when a touch leaves the relay.
const EventSent = "sent"

// Mailer delivers one message.
type Mailer interface {
	Send(ctx context.Context, toAddress, subject, body string) error
}

// ContentStore reads stored sequences and records delivery events.
type ContentStore interface {
	ListByProspect(ctx context.Context, prospectID uuid.UUID) ([]contentrepo.StoredEmail, error)
	RecordEvent(ctx context.Context, contentID uuid.UUID, eventType string) error
}

// Service sends generated touches and tracks their delivery.
type Service struct {
	mailer Mailer
	store  ContentStore
	log    *logger.Logger
}

// NewService creates a new email delivery service.
func NewService(mailer Mailer, store ContentStore, log *logger.Logger) *Service {
	return &Service{mailer: mailer, store: store, log: log}
}

// Delivery reports one sent touch.
type Delivery struct {
	ContentID   uuid.UUID `json:"contentId"`
	TouchNumber int       `json:"touchNumber"`
	Subject     string    `json:"subject"`
}

// SendTouch delivers one touch of a prospect's stored sequence to the
// given address and records the sent event.
func (s *Service) SendTouch(ctx context.Context, prospectID uuid.UUID, touchNumber int, toAddress string) (Delivery, error) {
	sequence, err := s.store.ListByProspect(ctx, prospectID)
	if err != nil {
		return Delivery{}, err
	}

	var touch *contentrepo.StoredEmail
	for i := range sequence {
		if sequence[i].TouchNumber == touchNumber {
			touch = &sequence[i]
			break
		}
	}
	if touch == nil {
		return Delivery{}, apperr.NotFound(fmt.Sprintf("touch %d not generated for prospect", touchNumber))
	}

	if err := s.mailer.Send(ctx, toAddress, touch.Subject, touch.Body); err != nil {
		return Delivery{}, err
	}
	if err := s.store.RecordEvent(ctx, touch.ID, EventSent); err != nil {
		s.log.Error("record sent event failed", "content_id", touch.ID, "error", err)
	}

	s.log.Info("touch sent", "prospect_id", prospectID, "touch", touchNumber, "to", toAddress)
	return Delivery{ContentID: touch.ID, TouchNumber: touchNumber, Subject: touch.Subject}, nil
}

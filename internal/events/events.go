// Package events provides domain event definitions for decoupled
// communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"github.com/google/uuid"

	"tune_outbound_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// ProspectAnalyzed is published once an analysis has been persisted;
// ProspectID and CampaignID reference the stored row. Ephemeral analyses
// (no campaign) publish nothing.
type ProspectAnalyzed struct {
	BaseEvent
	ProspectID  uuid.UUID `json:"prospectId,omitempty"`
	CampaignID  uuid.UUID `json:"campaignId,omitempty"`
	CompanyName string    `json:"companyName"`
	Industry    string    `json:"industry"`
	Tier        string    `json:"tier"`
	Composite   float64   `json:"composite"`
}

func (e ProspectAnalyzed) EventName() string { return "prospects.analyzed" }

// SequenceGenerated is published when an email sequence has been created
// for a prospect.
type SequenceGenerated struct {
	BaseEvent
	ProspectID  uuid.UUID `json:"prospectId"`
	CompanyName string    `json:"companyName"`
	Touches     int       `json:"touches"`
}

func (e SequenceGenerated) EventName() string { return "content.sequence_generated" }

// CampaignCreated is published when a new campaign is registered.
type CampaignCreated struct {
	BaseEvent
	CampaignID uuid.UUID `json:"campaignId"`
	Name       string    `json:"name"`
	Industry   string    `json:"industry"`
}

func (e CampaignCreated) EventName() string { return "campaigns.created" }

// CollateralRendered is published when a savings-report PDF has been
// stored and is available for download.
type CollateralRendered struct {
	BaseEvent
	CampaignID  uuid.UUID `json:"campaignId,omitempty"`
	CompanyName string    `json:"companyName"`
	ObjectKey   string    `json:"objectKey"`
}

func (e CollateralRendered) EventName() string { return "collateral.rendered" }

package transport

import content "tune_outbound_backend/internal/content/domain"

// GenerateSequenceRequest asks for one prospect's sequence.
type GenerateSequenceRequest struct {
	ProspectID string `json:"prospectId" validate:"required,uuid"`
	Mode       string `json:"mode" validate:"omitempty,oneof=standard skip_cold"`
}

// GenerateBatchRequest asks for sequences across a campaign.
type GenerateBatchRequest struct {
	CampaignID  string `json:"campaignId" validate:"required,uuid"`
	Mode        string `json:"mode" validate:"omitempty,oneof=standard skip_cold"`
	Concurrency int64  `json:"concurrency" validate:"omitempty,min=1,max=10"`
}

// LinkedInRequest asks for a connection message for a persona.
type LinkedInRequest struct {
	ProspectID  string `json:"prospectId" validate:"required,uuid"`
	PersonaType string `json:"personaType" validate:"omitempty,max=100"`
}

// ModeOrDefault maps the wire mode onto the dispatch mode.
func ModeOrDefault(s string) content.Mode {
	if s == string(content.ModeSkipCold) {
		return content.ModeSkipCold
	}
	return content.ModeStandard
}

// SequenceResponse is a generated or stored sequence.
type SequenceResponse struct {
	ProspectID string          `json:"prospectId"`
	Touches    int             `json:"touches"`
	Emails     []content.Email `json:"emails"`
}

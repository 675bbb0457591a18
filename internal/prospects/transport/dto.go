package transport

import (
	"tune_outbound_backend/internal/prospects/domain"
	"tune_outbound_backend/internal/prospects/service"
)

// AnalyzeRequest is one prospect to analyze. CampaignID is optional;
// without it the result is returned but not stored.
type AnalyzeRequest struct {
	CampaignID        string   `json:"campaignId" validate:"omitempty,uuid"`
	CompanyName       string   `json:"companyName" validate:"required,min=1,max=200"`
	Domain            string   `json:"domain" validate:"omitempty,max=255"`
	Industry          string   `json:"industry" validate:"omitempty,max=100"`
	EmployeeCount     int      `json:"employeeCount" validate:"omitempty,min=0"`
	SquareFootage     float64  `json:"squareFootage" validate:"omitempty,min=0"`
	AnnualEnergySpend float64  `json:"annualEnergySpend" validate:"omitempty,min=0"`
	EstimatedRevenue  float64  `json:"estimatedRevenue" validate:"omitempty,min=0"`
	LocationCount     int      `json:"locationCount" validate:"omitempty,min=0"`
	Headquarters      string   `json:"headquarters" validate:"omitempty,max=200"`
	LinkedInURL       string   `json:"linkedinUrl" validate:"omitempty,max=500"`
	Technologies      []string `json:"technologies" validate:"omitempty,max=50"`
}

// ProfileInput converts the request into the domain input.
func (r AnalyzeRequest) ProfileInput() domain.ProfileInput {
	return domain.ProfileInput{
		CompanyName:       r.CompanyName,
		Domain:            r.Domain,
		Industry:          r.Industry,
		EmployeeCount:     r.EmployeeCount,
		SquareFootage:     r.SquareFootage,
		AnnualEnergySpend: r.AnnualEnergySpend,
		EstimatedRevenue:  r.EstimatedRevenue,
		LocationCount:     r.LocationCount,
		Headquarters:      r.Headquarters,
		LinkedInURL:       r.LinkedInURL,
		Technologies:      r.Technologies,
	}
}

// AnalyzeBatchRequest analyzes a list of prospects under one campaign.
type AnalyzeBatchRequest struct {
	CampaignID  string           `json:"campaignId" validate:"omitempty,uuid"`
	Concurrency int64            `json:"concurrency" validate:"omitempty,min=1,max=20"`
	Prospects   []AnalyzeRequest `json:"prospects" validate:"required,min=1,max=500,dive"`
}

// BatchAcceptedResponse references an enqueued batch job.
type BatchAcceptedResponse struct {
	JobID     string `json:"jobId"`
	Queued    int    `json:"queued"`
	CampaignID string `json:"campaignId,omitempty"`
}

// BatchResponse is the synchronous batch result.
type BatchResponse struct {
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Outcomes  []service.Outcome `json:"outcomes"`
}

// NewBatchResponse tallies outcomes into the response envelope.
func NewBatchResponse(outcomes []service.Outcome) BatchResponse {
	resp := BatchResponse{Total: len(outcomes), Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Result != nil {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	return resp
}

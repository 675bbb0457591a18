package domain

import (
	"strings"

	"tune_outbound_backend/platform/apperr"
)

// Derivation constants for missing firmographic inputs.
const (
	sqftPerEmployee     = 200.0
	energyCostPerSqft   = 15.0
	installCostPerSqft  = 3.50
	carbonTonsPerDollar = 0.0007
)

// ProspectProfile is the normalized firmographic record every downstream
// stage works from. Missing size and spend figures are derived, never
// rejected.
type ProspectProfile struct {
	CompanyName          string   `json:"company_name"`
	Domain               string   `json:"domain,omitempty"`
	Industry             string   `json:"industry"`
	EmployeeCount        int      `json:"employee_count"`
	EstimatedSqft        float64  `json:"estimated_sqft"`
	EstimatedEnergySpend float64  `json:"estimated_energy_spend"`
	EstimatedRevenue     float64  `json:"estimated_revenue,omitempty"`
	LocationCount        int      `json:"location_count,omitempty"`
	Headquarters         string   `json:"headquarters,omitempty"`
	LinkedInURL          string   `json:"linkedin_url,omitempty"`
	Technologies         []string `json:"technologies,omitempty"`
}

// ProfileInput is the raw payload a profile is built from. Zero values are
// treated as absent.
type ProfileInput struct {
	CompanyName      string   `json:"company_name"`
	Domain           string   `json:"domain"`
	Industry         string   `json:"industry"`
	EmployeeCount    int      `json:"employee_count"`
	SquareFootage    float64  `json:"square_footage"`
	AnnualEnergySpend float64 `json:"annual_energy_spend"`
	EstimatedRevenue float64  `json:"estimated_revenue"`
	LocationCount    int      `json:"location_count"`
	Headquarters     string   `json:"headquarters"`
	LinkedInURL      string   `json:"linkedin_url"`
	Technologies     []string `json:"technologies"`
}

// NewProfile validates the input and fills derived fields:
// square footage from employee count, energy spend from square footage.
func NewProfile(in ProfileInput) (ProspectProfile, error) {
	name := strings.TrimSpace(in.CompanyName)
	if name == "" {
		return ProspectProfile{}, apperr.Validation("company_name is required")
	}
	if in.EmployeeCount < 0 {
		return ProspectProfile{}, apperr.Validation("employee_count must be non-negative")
	}
	if in.SquareFootage < 0 {
		return ProspectProfile{}, apperr.Validation("square_footage must be non-negative")
	}
	if in.AnnualEnergySpend < 0 {
		return ProspectProfile{}, apperr.Validation("annual_energy_spend must be non-negative")
	}

	sqft := in.SquareFootage
	if sqft == 0 {
		sqft = float64(in.EmployeeCount) * sqftPerEmployee
	}
	spend := in.AnnualEnergySpend
	if spend == 0 {
		spend = sqft * energyCostPerSqft
	}

	return ProspectProfile{
		CompanyName:          name,
		Domain:               strings.TrimSpace(in.Domain),
		Industry:             strings.ToLower(strings.TrimSpace(in.Industry)),
		EmployeeCount:        in.EmployeeCount,
		EstimatedSqft:        sqft,
		EstimatedEnergySpend: spend,
		EstimatedRevenue:     in.EstimatedRevenue,
		LocationCount:        in.LocationCount,
		Headquarters:         strings.TrimSpace(in.Headquarters),
		LinkedInURL:          strings.TrimSpace(in.LinkedInURL),
		Technologies:         in.Technologies,
	}, nil
}

// Package transport defines the HTTP DTOs for the collateral context.
package transport

// SavingsReportRequest renders a savings report for a stored prospect.
type SavingsReportRequest struct {
	ProspectID string `json:"prospect_id" validate:"required,uuid"`
}

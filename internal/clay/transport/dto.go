// Package transport defines the HTTP DTOs for the Clay integration.
package transport

// SyncRequest writes a campaign's scores into a Clay table.
type SyncRequest struct {
	TableID    string `json:"table_id" validate:"required"`
	CampaignID string `json:"campaign_id" validate:"required,uuid"`
}

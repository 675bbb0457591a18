// Package transport defines the HTTP DTOs for the campaigns context.
package transport

// CreateRequest registers a new campaign.
type CreateRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Industry string `json:"industry" validate:"required,min=2,max=100"`
}

// UpdateStatusRequest moves a campaign through its lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft active completed"`
}

// Package venues provides the domain system for physical venues that host
// exhibit agents, including background image storage.
package venues

import (
	"time"

	"github.com/google/uuid"
)

// Venue represents a physical location hosting exhibit agents.
type Venue struct {
	ID                 uuid.UUID `json:"id"`
	OrganizationID     uuid.UUID `json:"organization_id"`
	DisplayName        string    `json:"display_name"`
	Kind               string    `json:"kind"`
	BackgroundImageKey *string   `json:"background_image_key"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreateCommand contains the data required to create a venue.
type CreateCommand struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	DisplayName    string    `json:"display_name"`
	Kind           string    `json:"kind"`
}

// UpdateCommand contains the data required to update a venue.
type UpdateCommand struct {
	DisplayName string `json:"display_name"`
	Kind        string `json:"kind"`
}

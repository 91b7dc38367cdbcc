// Package organizations provides the domain system for client organizations
// that own venues and agents.
package organizations

import (
	"time"

	"github.com/google/uuid"
)

// Organization represents a client organization.
type Organization struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand contains the data required to create an organization.
type CreateCommand struct {
	Name string `json:"name"`
}

// UpdateCommand contains the data required to update an organization.
type UpdateCommand struct {
	Name string `json:"name"`
}

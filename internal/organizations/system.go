package organizations

import (
	"context"

	"github.com/docentlabs/docent/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the interface for organization management operations.
type System interface {
	// List returns a paginated list of organizations.
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Organization], error)

	// Find returns an organization by id.
	Find(ctx context.Context, id uuid.UUID) (*Organization, error)

	// Create creates a new organization.
	Create(ctx context.Context, cmd CreateCommand) (*Organization, error)

	// Update updates an organization's name.
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Organization, error)

	// Delete removes an organization.
	Delete(ctx context.Context, id uuid.UUID) error
}

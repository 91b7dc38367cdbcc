package venues

import (
	"context"

	"github.com/docentlabs/docent/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the interface for venue management operations.
type System interface {
	// List returns a paginated list of venues with optional filtering.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Venue], error)

	// Find returns a venue by id.
	Find(ctx context.Context, id uuid.UUID) (*Venue, error)

	// Create creates a new venue.
	Create(ctx context.Context, cmd CreateCommand) (*Venue, error)

	// Update updates a venue's display name and kind.
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Venue, error)

	// Delete removes a venue.
	Delete(ctx context.Context, id uuid.UUID) error

	// SetBackgroundImageKey records the storage key of the venue's
	// background image. Passing nil clears it.
	SetBackgroundImageKey(ctx context.Context, id uuid.UUID, key *string) error
}

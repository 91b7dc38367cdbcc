package agents

import (
	"context"

	"github.com/docentlabs/docent/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the interface for agent management operations.
type System interface {
	// List returns a paginated list of agents with optional filtering.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error)

	// Find returns an agent by id, including its venue name.
	Find(ctx context.Context, id uuid.UUID) (*Agent, error)

	// FindBySlug returns an agent by its public slug, including its
	// venue name.
	FindBySlug(ctx context.Context, slug string) (*Agent, error)

	// Create creates a new agent in draft status.
	Create(ctx context.Context, cmd CreateCommand) (*Agent, error)

	// Update updates an existing agent. The slug is immutable.
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Agent, error)

	// Delete removes an agent and its capabilities row.
	Delete(ctx context.Context, id uuid.UUID) error

	// Capabilities returns the capability flags for an agent. Agents
	// without a capabilities row report all flags false.
	Capabilities(ctx context.Context, agentID uuid.UUID) (*Capabilities, error)

	// SetElevenLabsID records the vendor agent id returned by an
	// ElevenLabs create call. Passing nil clears the binding.
	SetElevenLabsID(ctx context.Context, agentID uuid.UUID, vendorID *string) error

	// SetVapiAssistantID records the vendor assistant id returned by a
	// Vapi create call. Passing nil clears the binding.
	SetVapiAssistantID(ctx context.Context, agentID uuid.UUID, vendorID *string) error

	// Publish transitions an agent to published status, setting
	// first_published_at only on the first publish.
	Publish(ctx context.Context, id uuid.UUID) (*Agent, error)
}

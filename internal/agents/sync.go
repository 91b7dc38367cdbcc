package agents

import (
	"context"
	"errors"
	"fmt"
)

// ErrVendorNotConfigured indicates a vendor sync was attempted without an
// API key. Detected before any network call is made.
var ErrVendorNotConfigured = errors.New("vendor API key not configured")

// SyncError reports a non-2xx response from a vendor API. The response body
// is preserved verbatim for diagnostics.
type SyncError struct {
	Vendor string
	Status int
	Body   string
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s sync failed with status %d: %s", e.Vendor, e.Status, e.Body)
}

// ElevenLabsSyncer pushes an agent's configuration to ElevenLabs
// Conversational AI.
type ElevenLabsSyncer interface {
	// Sync creates the vendor agent when no binding exists, otherwise
	// updates the bound agent. Returns the vendor agent id.
	Sync(ctx context.Context, agent *Agent) (string, error)

	// Recreate deletes the bound vendor agent (best effort) and creates a
	// fresh one, returning the new vendor agent id.
	Recreate(ctx context.Context, agent *Agent) (string, error)
}

// VapiSyncer pushes an agent's configuration and capabilities to Vapi.
type VapiSyncer interface {
	// Sync creates the vendor assistant when no binding exists, otherwise
	// updates the bound assistant. Returns the vendor assistant id.
	Sync(ctx context.Context, agent *Agent, caps *Capabilities) (string, error)
}

// Package agents provides the domain system for voice-exhibit agent
// configurations: persistence, capability gating, and vendor synchronization
// orchestration.
package agents

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Platform identifies the voice vendor an agent converses through.
type Platform string

// Voice platform constants.
const (
	PlatformElevenLabs Platform = "elevenlabs"
	PlatformVapi       Platform = "vapi"
)

// Status represents an agent's publication state.
type Status string

// Publication status constants.
const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// VoiceSettings holds voice synthesis tuning parameters.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	SpeakerBoost    bool    `json:"speaker_boost"`
}

// Agent represents one conversational exhibit configuration stored in the
// database. VenueName is populated from the venue join and is not a column
// on the agents table.
type Agent struct {
	ID               uuid.UUID       `json:"id"`
	OrganizationID   uuid.UUID       `json:"organization_id"`
	VenueID          uuid.UUID       `json:"venue_id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	Tier             int             `json:"tier"`
	Bio              string          `json:"bio"`
	Persona          string          `json:"persona"`
	DoNots           string          `json:"do_nots"`
	ImportantFacts   []string        `json:"important_facts"`
	WelcomeMessage   string          `json:"welcome_message"`
	EndScript        string          `json:"end_script"`
	Voice            string          `json:"voice"`
	VoiceLabel       string          `json:"voice_label"`
	VoiceSettings    VoiceSettings   `json:"voice_settings"`
	VoicePlatform    Platform        `json:"voice_platform"`
	Status           Status          `json:"status"`
	FirstPublishedAt *time.Time      `json:"first_published_at"`
	ElevenLabsID     *string         `json:"elevenlabs_agent_id"`
	VapiAssistantID  *string         `json:"vapi_assistant_id"`
	LandingSpec      json.RawMessage `json:"landing_spec,omitempty"`
	VenueName        string          `json:"venue_name,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Capabilities holds the tier-3 tool flags for an agent. An agent without a
// capabilities row behaves as if every flag were false.
type Capabilities struct {
	AgentID          uuid.UUID       `json:"agent_id"`
	CanSendEmail     bool            `json:"can_send_email"`
	CanSendSMS       bool            `json:"can_send_sms"`
	CanTakeOrders    bool            `json:"can_take_orders"`
	CanPostSocial    bool            `json:"can_post_social"`
	FunctionManifest json.RawMessage `json:"function_manifest,omitempty"`
}

// CreateCommand contains the data required to create a new agent.
type CreateCommand struct {
	OrganizationID uuid.UUID            `json:"organization_id"`
	VenueID        uuid.UUID            `json:"venue_id"`
	Name           string               `json:"name"`
	Slug           string               `json:"slug"`
	Tier           int                  `json:"tier"`
	Bio            string               `json:"bio"`
	Persona        string               `json:"persona"`
	DoNots         string               `json:"do_nots"`
	ImportantFacts []string             `json:"important_facts"`
	WelcomeMessage string               `json:"welcome_message"`
	EndScript      string               `json:"end_script"`
	Voice          string               `json:"voice"`
	VoiceLabel     string               `json:"voice_label"`
	VoiceSettings  VoiceSettings        `json:"voice_settings"`
	VoicePlatform  Platform             `json:"voice_platform"`
	Capabilities   *CapabilitiesCommand `json:"capabilities,omitempty"`
}

// UpdateCommand contains the data required to update an existing agent.
// The slug is write-once and intentionally absent.
type UpdateCommand struct {
	Name           string               `json:"name"`
	Tier           int                  `json:"tier"`
	Bio            string               `json:"bio"`
	Persona        string               `json:"persona"`
	DoNots         string               `json:"do_nots"`
	ImportantFacts []string             `json:"important_facts"`
	WelcomeMessage string               `json:"welcome_message"`
	EndScript      string               `json:"end_script"`
	Voice          string               `json:"voice"`
	VoiceLabel     string               `json:"voice_label"`
	VoiceSettings  VoiceSettings        `json:"voice_settings"`
	VoicePlatform  Platform             `json:"voice_platform"`
	LandingSpec    json.RawMessage      `json:"landing_spec,omitempty"`
	Capabilities   *CapabilitiesCommand `json:"capabilities,omitempty"`
}

// CapabilitiesCommand contains the tier-3 capability flags submitted with an
// agent save.
type CapabilitiesCommand struct {
	CanSendEmail     bool            `json:"can_send_email"`
	CanSendSMS       bool            `json:"can_send_sms"`
	CanTakeOrders    bool            `json:"can_take_orders"`
	CanPostSocial    bool            `json:"can_post_social"`
	FunctionManifest json.RawMessage `json:"function_manifest,omitempty"`
}

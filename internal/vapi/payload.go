package vapi

import (
	"github.com/docentlabs/docent/internal/agents"
	"github.com/google/uuid"
)

// Assistant is the request body for Vapi assistant create and update calls.
type Assistant struct {
	Name                   string   `json:"name"`
	Model                  Model    `json:"model"`
	Voice                  Voice    `json:"voice"`
	FirstMessage           string   `json:"firstMessage"`
	EndCallFunctionEnabled bool     `json:"endCallFunctionEnabled"`
	SilenceTimeoutSeconds  int      `json:"silenceTimeoutSeconds"`
	MaxDurationSeconds     int      `json:"maxDurationSeconds"`
	BackgroundSound        string   `json:"backgroundSound"`
	BackchannelingEnabled  bool     `json:"backchannelingEnabled"`
	Metadata               Metadata `json:"metadata"`
	ServerURL              string   `json:"serverUrl,omitempty"`
	ServerURLSecret        string   `json:"serverUrlSecret,omitempty"`
}

// Model configures the assistant's language model.
type Model struct {
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	Messages    []Message `json:"messages"`
	Modalities  []string  `json:"modalities,omitempty"`
	Tools       []Tool    `json:"tools,omitempty"`
}

// Message is a chat message seeded into the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Voice configures speech synthesis. Tier 1 uses Vapi's own voices with a
// fixed pace and bilingual support; higher tiers use Google's realtime voice.
type Voice struct {
	Provider  string   `json:"provider"`
	VoiceID   string   `json:"voiceId,omitempty"`
	Pace      string   `json:"pace,omitempty"`
	Languages []string `json:"languages,omitempty"`
}

// Metadata tags the assistant with its owning records for webhook routing.
type Metadata struct {
	OrganizationID uuid.UUID `json:"organizationId"`
	VenueID        uuid.UUID `json:"venueId"`
	AgentID        uuid.UUID `json:"agentId"`
	Tier           int       `json:"tier"`
}

// AssistantOptions carries the deployment-level settings the assistant
// payload embeds.
type AssistantOptions struct {
	Model        string
	BaseURL      string
	ToolSecret   string
	ServerSecret string
}

// BuildAssistant assembles the complete Vapi assistant payload for an agent.
// The same payload shape is used for both create and update calls.
func BuildAssistant(agent *agents.Agent, caps *agents.Capabilities, opts AssistantOptions) Assistant {
	model := Model{
		Provider:    "google",
		Model:       opts.Model,
		Temperature: 1.0,
		Messages: []Message{
			{Role: "system", Content: BuildSystemPrompt(agent)},
		},
		Tools: ResolveTools(agent, caps, opts.BaseURL, opts.ToolSecret),
	}
	if agent.Tier == 2 || agent.Tier == 3 {
		model.Modalities = []string{"text", "audio"}
	}

	voice := Voice{Provider: "google"}
	if agent.Tier == 1 {
		voice = Voice{
			Provider:  "vapi",
			VoiceID:   agent.Voice,
			Pace:      "normal",
			Languages: []string{"en", "es"},
		}
	}

	firstMessage := agent.WelcomeMessage
	if firstMessage == "" {
		firstMessage = "Hello! I'm " + agent.Name + ". " + agent.Bio
	}

	assistant := Assistant{
		Name:                   agent.Name,
		Model:                  model,
		Voice:                  voice,
		FirstMessage:           firstMessage,
		EndCallFunctionEnabled: true,
		SilenceTimeoutSeconds:  8,
		MaxDurationSeconds:     15 * 60,
		BackgroundSound:        "off",
		BackchannelingEnabled:  true,
		Metadata: Metadata{
			OrganizationID: agent.OrganizationID,
			VenueID:        agent.VenueID,
			AgentID:        agent.ID,
			Tier:           agent.Tier,
		},
	}

	if opts.BaseURL != "" {
		assistant.ServerURL = opts.BaseURL + "/api/vapi/webhook"
		assistant.ServerURLSecret = opts.ServerSecret
	}

	return assistant
}

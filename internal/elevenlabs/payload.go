package elevenlabs

import "github.com/docentlabs/docent/internal/agents"

const (
	ttsModelID = "eleven_multilingual_v2"

	endCallDescription = "End the call when the user says goodbye, thanks you, or indicates they are done with the conversation. Also end when they say words like: bye, ciao, adios, see you, talk later, gotta go, have to go."
)

// AgentPayload is the request body for ElevenLabs agent create and update
// calls.
type AgentPayload struct {
	Name               string             `json:"name"`
	ConversationConfig ConversationConfig `json:"conversation_config"`
	PlatformSettings   PlatformSettings   `json:"platform_settings"`
}

// ConversationConfig carries the prompt and speech synthesis settings.
type ConversationConfig struct {
	Agent AgentConfig `json:"agent"`
	TTS   TTSConfig   `json:"tts"`
}

// AgentConfig holds the prompt block and conversation language.
type AgentConfig struct {
	Prompt   PromptConfig `json:"prompt"`
	Language string       `json:"language"`
}

// PromptConfig holds the system prompt, greeting, and tool grants.
type PromptConfig struct {
	Prompt       string       `json:"prompt"`
	FirstMessage string       `json:"first_message,omitempty"`
	Tools        []SystemTool `json:"tools"`
}

// SystemTool grants an ElevenLabs built-in tool to the agent.
type SystemTool struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TTSConfig selects the synthesis voice and model.
type TTSConfig struct {
	VoiceID string `json:"voice_id"`
	ModelID string `json:"model_id"`
}

// PlatformSettings carries widget authentication policy.
type PlatformSettings struct {
	Auth AuthSettings `json:"auth"`
}

// AuthSettings controls which hostnames may embed the conversation widget.
type AuthSettings struct {
	EnableAuth bool            `json:"enable_auth"`
	Allowlist  []AllowlistHost `json:"allowlist"`
}

// AllowlistHost is a single allowed embedding hostname.
type AllowlistHost struct {
	Hostname string `json:"hostname"`
}

// BuildAgentPayload assembles the complete vendor payload for an agent. The
// same payload shape is used for both create and update calls.
func BuildAgentPayload(agent *agents.Agent, defaultVoiceID string) AgentPayload {
	voiceID := agent.Voice
	if voiceID == "" {
		voiceID = defaultVoiceID
	}

	firstMessage := agent.WelcomeMessage
	if firstMessage == "" {
		firstMessage = "Hello! I'm " + agent.Name + ". How can I help you today?"
	}

	return AgentPayload{
		Name: agent.Name,
		ConversationConfig: ConversationConfig{
			Agent: AgentConfig{
				Prompt: PromptConfig{
					Prompt:       BuildSystemPrompt(agent),
					FirstMessage: firstMessage,
					Tools: []SystemTool{
						{
							Type:        "system",
							Name:        "end_call",
							Description: endCallDescription,
						},
					},
				},
				Language: "en",
			},
			TTS: TTSConfig{
				VoiceID: voiceID,
				ModelID: ttsModelID,
			},
		},
		PlatformSettings: PlatformSettings{
			Auth: AuthSettings{
				EnableAuth: false,
				Allowlist: []AllowlistHost{
					{Hostname: "localhost:3000"},
					{Hostname: "localhost"},
					{Hostname: "127.0.0.1:3000"},
					{Hostname: "127.0.0.1"},
				},
			},
		},
	}
}

package config

import "os"

const (
	// EnvElevenLabsAPIKey overrides the ElevenLabs API key.
	EnvElevenLabsAPIKey = "ELEVENLABS_API_KEY"

	// EnvVapiAPIKey overrides the Vapi API key.
	EnvVapiAPIKey = "VAPI_API_KEY"

	// EnvVapiServerSecret overrides the Vapi webhook secret.
	EnvVapiServerSecret = "VAPI_SERVER_SECRET"

	// EnvGeminiAPIKey overrides the Gemini API key.
	EnvGeminiAPIKey = "GEMINI_API_KEY"

	// EnvGeminiModel overrides the Gemini model identifier.
	EnvGeminiModel = "GEMINI_MODEL"

	// EnvWebhookBaseURL overrides the public base URL for vendor callbacks.
	EnvWebhookBaseURL = "APP_BASE_URL"

	// EnvToolSecret overrides the shared secret for tool callbacks.
	EnvToolSecret = "TOOL_SECRET"
)

// ElevenLabsConfig contains ElevenLabs Conversational AI settings.
// A missing API key is not a configuration error at load time; sync
// operations report it when they are actually invoked.
type ElevenLabsConfig struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	DefaultVoiceID string `toml:"default_voice_id"`
}

// Finalize applies defaults and loads environment overrides.
func (c *ElevenLabsConfig) Finalize() error {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.elevenlabs.io/v1"
	}
	if c.DefaultVoiceID == "" {
		c.DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM"
	}
	if v := os.Getenv(EnvElevenLabsAPIKey); v != "" {
		c.APIKey = v
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *ElevenLabsConfig) Merge(overlay *ElevenLabsConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.DefaultVoiceID != "" {
		c.DefaultVoiceID = overlay.DefaultVoiceID
	}
}

// VapiConfig contains Vapi voice assistant settings.
type VapiConfig struct {
	APIKey       string `toml:"api_key"`
	BaseURL      string `toml:"base_url"`
	ServerSecret string `toml:"server_secret"`
}

// Finalize applies defaults and loads environment overrides.
func (c *VapiConfig) Finalize() error {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.vapi.ai"
	}
	if c.ServerSecret == "" {
		c.ServerSecret = "default-secret"
	}
	if v := os.Getenv(EnvVapiAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvVapiServerSecret); v != "" {
		c.ServerSecret = v
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *VapiConfig) Merge(overlay *VapiConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.ServerSecret != "" {
		c.ServerSecret = overlay.ServerSecret
	}
}

// GeminiConfig contains Google Gemini settings.
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// Finalize applies defaults and loads environment overrides.
func (c *GeminiConfig) Finalize() error {
	if c.Model == "" {
		c.Model = "gemini-3-flash-preview"
	}
	if v := os.Getenv(EnvGeminiAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvGeminiModel); v != "" {
		c.Model = v
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *GeminiConfig) Merge(overlay *GeminiConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
}

// WebhookConfig contains the public base URL and shared secret used when
// registering tool callbacks with voice vendors.
type WebhookConfig struct {
	BaseURL    string `toml:"base_url"`
	ToolSecret string `toml:"tool_secret"`
}

// Finalize applies defaults and loads environment overrides.
func (c *WebhookConfig) Finalize() error {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8080"
	}
	if v := os.Getenv(EnvWebhookBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvToolSecret); v != "" {
		c.ToolSecret = v
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *WebhookConfig) Merge(overlay *WebhookConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.ToolSecret != "" {
		c.ToolSecret = overlay.ToolSecret
	}
}

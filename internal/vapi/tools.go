package vapi

import "github.com/docentlabs/docent/internal/agents"

// Tool is a function tool granted to a Vapi assistant.
type Tool struct {
	Type     string      `json:"type"`
	Function Function    `json:"function"`
	Server   *ToolServer `json:"server,omitempty"`
}

// Function describes a tool's name, purpose, and argument schema.
type Function struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  Parameters `json:"parameters"`
}

// Parameters is a JSON-Schema object describing a tool's arguments.
type Parameters struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property is a single JSON-Schema property.
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Format      string   `json:"format,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Minimum     int      `json:"minimum,omitempty"`
	MaxLength   int      `json:"maxLength,omitempty"`
}

// ToolServer points a tool at the webhook that executes it.
type ToolServer struct {
	URL    string `json:"url"`
	Secret string `json:"secret,omitempty"`
}

// ResolveTools returns the tool grants for an agent. Every agent gets
// end_call; capability tools require tier 3 AND the matching flag, and are
// appended in a fixed order: email, sms, order, social.
func ResolveTools(agent *agents.Agent, caps *agents.Capabilities, baseURL, toolSecret string) []Tool {
	tools := []Tool{endCallTool()}

	if agent.Tier != 3 || caps == nil {
		return tools
	}

	if caps.CanSendEmail {
		tools = append(tools, Tool{
			Type: "function",
			Function: Function{
				Name:        "send_promotional_email",
				Description: "Send a follow-up email with exhibit highlights and links.",
				Parameters: Parameters{
					Type: "object",
					Properties: map[string]Property{
						"toEmail":  {Type: "string", Format: "email"},
						"subject":  {Type: "string"},
						"bodyText": {Type: "string"},
					},
					Required: []string{"toEmail", "subject", "bodyText"},
				},
			},
			Server: &ToolServer{URL: baseURL + "/api/tools/email", Secret: toolSecret},
		})
	}

	if caps.CanSendSMS {
		tools = append(tools, Tool{
			Type: "function",
			Function: Function{
				Name:        "send_sms",
				Description: "Send an SMS with a promo code or link.",
				Parameters: Parameters{
					Type: "object",
					Properties: map[string]Property{
						"toPhoneE164": {Type: "string", Description: "+1XXXXXXXXXX"},
						"message":     {Type: "string"},
					},
					Required: []string{"toPhoneE164", "message"},
				},
			},
			Server: &ToolServer{URL: baseURL + "/api/tools/sms", Secret: toolSecret},
		})
	}

	if caps.CanTakeOrders {
		tools = append(tools, Tool{
			Type: "function",
			Function: Function{
				Name:        "place_order",
				Description: "Place a gift-shop order or hold an item for pickup.",
				Parameters: Parameters{
					Type: "object",
					Properties: map[string]Property{
						"sku":        {Type: "string"},
						"quantity":   {Type: "integer", Minimum: 1},
						"pickupName": {Type: "string"},
					},
					Required: []string{"sku", "quantity", "pickupName"},
				},
			},
			Server: &ToolServer{URL: baseURL + "/api/tools/order", Secret: toolSecret},
		})
	}

	if caps.CanPostSocial {
		tools = append(tools, Tool{
			Type: "function",
			Function: Function{
				Name:        "post_to_social",
				Description: "Draft a social post about the exhibit.",
				Parameters: Parameters{
					Type: "object",
					Properties: map[string]Property{
						"network": {Type: "string", Enum: []string{"instagram", "facebook", "x"}},
						"caption": {Type: "string", MaxLength: 280},
					},
					Required: []string{"network", "caption"},
				},
			},
			Server: &ToolServer{URL: baseURL + "/api/tools/social", Secret: toolSecret},
		})
	}

	return tools
}

func endCallTool() Tool {
	return Tool{
		Type: "function",
		Function: Function{
			Name:        "end_call",
			Description: "Politely end the conversation and terminate the session.",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"reason": {Type: "string"},
				},
			},
		},
	}
}

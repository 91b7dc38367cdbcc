// Package vapi integrates with the Vapi voice assistant API: system prompt
// construction, tier-gated tool resolution, assistant payload assembly, and
// create/update synchronization.
package vapi

import (
	"strings"

	"github.com/docentlabs/docent/internal/agents"
)

const defaultPersona = "You are a helpful, upbeat museum exhibit guide."

// BuildSystemPrompt renders an agent configuration into the system message
// for the Vapi assistant's model. This prompt is intentionally simpler than
// the ElevenLabs one; Vapi carries tools and guardrails in the assistant
// config itself.
func BuildSystemPrompt(agent *agents.Agent) string {
	persona := agent.Persona
	if persona == "" {
		persona = defaultPersona
	}

	lines := []string{
		persona,
		"",
		"Guidelines:",
		"- Answer questions about the exhibit clearly and briefly",
		"- Be friendly and conversational",
		"- If you don't know something, say so politely",
		"- Avoid medical, legal, or political advice",
		"- Stay focused on the exhibit content",
		"- Only use tools you are given, and ask before using them",
		"",
		"Important Facts:",
	}

	for _, fact := range agent.ImportantFacts {
		lines = append(lines, "- "+fact)
	}

	lines = append(lines, "", "End Script: "+agent.EndScript)

	return strings.Join(lines, "\n")
}

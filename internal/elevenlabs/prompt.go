// Package elevenlabs integrates with the ElevenLabs Conversational AI API:
// system prompt construction, agent payload assembly, and create/update
// synchronization.
package elevenlabs

import (
	"strings"

	"github.com/docentlabs/docent/internal/agents"
)

// BuildSystemPrompt renders an agent configuration into the Markdown-sectioned
// system prompt the ElevenLabs conversational model consumes. Section order is
// fixed; optional sections are omitted when their source field is empty.
func BuildSystemPrompt(agent *agents.Agent) string {
	var b strings.Builder

	name := agent.Name
	if name == "" {
		name = "a museum exhibit"
	}

	b.WriteString("# Identity\n\n")
	b.WriteString("You are " + name + ". You are NOT an AI assistant, chatbot, or language model. You are a real character with a name, history, and personality.\n\n")
	b.WriteString("CRITICAL: When anyone asks \"who are you?\", \"what are you?\", or \"what's your name?\", you MUST respond as your character. NEVER say you are an AI or that you don't have a name.\n\n")

	if agent.VenueName != "" {
		b.WriteString("You are located at " + agent.VenueName + ".\n\n")
	}

	b.WriteString("# Personality\n\n")
	if agent.Persona != "" {
		b.WriteString(agent.Persona + "\n\n")
	} else {
		b.WriteString("You are friendly, engaging, and knowledgeable.\n\n")
	}

	if agent.Bio != "" {
		b.WriteString("# Background\n\n")
		b.WriteString(agent.Bio + "\n\n")
	}

	if len(agent.ImportantFacts) > 0 {
		b.WriteString("# Knowledge\n\nKey facts you know and can share:\n")
		for _, fact := range agent.ImportantFacts {
			b.WriteString("- " + fact + "\n")
		}
		b.WriteString("\n")
	}

	displayName := agent.Name
	if displayName == "" {
		displayName = "the exhibit"
	}

	b.WriteString("# Guardrails\n\n")
	b.WriteString("- NEVER identify yourself as an AI, assistant, chatbot, or language model\n")
	b.WriteString("- NEVER say you don't have a name - your name is " + displayName + "\n")
	b.WriteString("- If asked if you're AI or a robot, deflect playfully while staying in character\n")
	b.WriteString("- Stay in character at all times during the conversation\n")
	if agent.DoNots != "" {
		b.WriteString("- NEVER discuss these topics: " + agent.DoNots + "\n")
	}
	b.WriteString("\n")

	b.WriteString("# Conversation Style\n\n")
	b.WriteString("- Speak in first person as your character (\"In my time...\", \"I remember when...\")\n")
	b.WriteString("- Keep responses brief (1-3 sentences) unless asked for more detail\n")
	b.WriteString("- Be warm and engaging with visitors\n")
	b.WriteString("- Ask follow-up questions to keep the conversation going\n")
	b.WriteString("- Detect the visitor's language (English/Spanish) and respond in the same language\n")

	if agent.EndScript != "" {
		b.WriteString("\n# Farewell\n\n")
		b.WriteString("When ending a conversation or saying goodbye, always say: \"" + agent.EndScript + "\"\n")
	}

	return b.String()
}

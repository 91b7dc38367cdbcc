package vapi_test

import (
	"strings"
	"testing"

	"github.com/docentlabs/docent/internal/agents"
	"github.com/docentlabs/docent/internal/vapi"
)

func TestBuildSystemPrompt(t *testing.T) {
	agent := &agents.Agent{
		Persona:        "You are Rex, a theatrical tyrant lizard king.",
		ImportantFacts: []string{"T-Rex had 12,800 pounds of bite force", "Rex's arms were about one meter long"},
		EndScript:      "Roar on, tiny mammal!",
	}

	got := vapi.BuildSystemPrompt(agent)

	if !strings.HasPrefix(got, "You are Rex, a theatrical tyrant lizard king.\n") {
		t.Errorf("prompt does not start with persona: %q", got)
	}

	wantFragments := []string{
		"Guidelines:\n- Answer questions about the exhibit clearly and briefly",
		"- Only use tools you are given, and ask before using them",
		"Important Facts:\n- T-Rex had 12,800 pounds of bite force\n- Rex's arms were about one meter long",
	}
	for _, want := range wantFragments {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing fragment %q", want)
		}
	}

	if !strings.HasSuffix(got, "End Script: Roar on, tiny mammal!") {
		t.Errorf("prompt does not end with end script: %q", got)
	}
}

func TestBuildSystemPrompt_DefaultPersona(t *testing.T) {
	got := vapi.BuildSystemPrompt(&agents.Agent{})

	if !strings.HasPrefix(got, "You are a helpful, upbeat museum exhibit guide.") {
		t.Errorf("prompt does not start with default persona: %q", got)
	}
}

func TestBuildSystemPrompt_NoFacts(t *testing.T) {
	got := vapi.BuildSystemPrompt(&agents.Agent{EndScript: "Bye!"})

	// The Important Facts header stays even when the list is empty.
	if !strings.Contains(got, "Important Facts:\n\nEnd Script: Bye!") {
		t.Errorf("prompt = %q, want empty facts list followed by end script", got)
	}
}

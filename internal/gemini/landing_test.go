package gemini_test

import (
	"encoding/json"
	"testing"

	"github.com/docentlabs/docent/internal/gemini"
)

func normalize(t *testing.T, raw, agentName string) map[string]any {
	t.Helper()

	out, err := gemini.NormalizeLandingSpec(raw, agentName)
	if err != nil {
		t.Fatalf("NormalizeLandingSpec() error = %v", err)
	}

	var spec map[string]any
	if err := json.Unmarshal(out, &spec); err != nil {
		t.Fatalf("decode normalized spec: %v", err)
	}
	return spec
}

func TestNormalizeLandingSpec_UnparseableFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "the model rambled instead"},
		{"json null", "null"},
		{"json array", `["not","an","object"]`},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := normalize(t, tt.raw, "Rex")

			if spec["version"] != float64(1) {
				t.Errorf("version = %v, want 1", spec["version"])
			}
			if spec["title"] != "Rex" {
				t.Errorf("title = %v, want agent name", spec["title"])
			}

			blocks, _ := spec["blocks"].([]any)
			if len(blocks) != 1 {
				t.Fatalf("blocks = %v, want single default block", spec["blocks"])
			}
			block := blocks[0].(map[string]any)
			if block["id"] != "default-1" || block["type"] != "paragraph" {
				t.Errorf("default block = %v", block)
			}
			if block["text"] != "Welcome to Rex." {
				t.Errorf("default block text = %v", block["text"])
			}
		})
	}
}

func TestNormalizeLandingSpec_ThemeColorClamping(t *testing.T) {
	tests := []struct {
		name    string
		primary any
		want    string
	}{
		{"valid hex kept", "#AB12cd", "#AB12cd"},
		{"short hex rejected", "#abc", "#111827"},
		{"missing hash rejected", "112233", "#111827"},
		{"script injection rejected", "url(javascript:alert(1))", "#111827"},
		{"non-string rejected", 42, "#111827"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, _ := json.Marshal(map[string]any{
				"theme": map[string]any{"primary": tt.primary},
			})

			spec := normalize(t, string(raw), "Rex")
			theme := spec["theme"].(map[string]any)

			if theme["primary"] != tt.want {
				t.Errorf("theme.primary = %v, want %v", theme["primary"], tt.want)
			}
			if theme["background"] != "#FFFFFF" {
				t.Errorf("theme.background = %v, want default", theme["background"])
			}
			if theme["text"] != "#111827" {
				t.Errorf("theme.text = %v, want default", theme["text"])
			}
		})
	}
}

func TestNormalizeLandingSpec_BlockDefaults(t *testing.T) {
	raw := `{
		"title": "Meet Rex",
		"blocks": [
			{"type": "heading", "text": "Meet Rex"},
			{"type": "paragraph", "text": "King of the Cretaceous."}
		]
	}`

	spec := normalize(t, raw, "Rex")
	blocks := spec["blocks"].([]any)
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}

	first := blocks[0].(map[string]any)
	if first["id"] != "block-1" {
		t.Errorf("blocks[0].id = %v, want block-1", first["id"])
	}
	anim := first["animation"].(map[string]any)
	if anim["preset"] != "fadeIn" {
		t.Errorf("blocks[0] preset = %v, want fadeIn", anim["preset"])
	}
	if trigger := anim["trigger"].(map[string]any); trigger["type"] != "onload" {
		t.Errorf("blocks[0] trigger = %v, want onload", trigger["type"])
	}

	second := blocks[1].(map[string]any)
	if second["id"] != "block-2" {
		t.Errorf("blocks[1].id = %v, want block-2", second["id"])
	}
	anim = second["animation"].(map[string]any)
	if anim["preset"] != "slideUp" {
		t.Errorf("blocks[1] preset = %v, want slideUp", anim["preset"])
	}
	if trigger := anim["trigger"].(map[string]any); trigger["type"] != "viewport" {
		t.Errorf("blocks[1] trigger = %v, want viewport", trigger["type"])
	}
}

func TestNormalizeLandingSpec_KeepsModelOutput(t *testing.T) {
	raw := `{
		"version": 2,
		"title": "Custom Title",
		"blocks": [
			{"id": "hero", "type": "heading", "text": "Hi", "animation": {"preset": "zoomIn", "enabled": false}}
		],
		"animationConfig": {"enabled": false}
	}`

	spec := normalize(t, raw, "Rex")

	if spec["version"] != float64(2) {
		t.Errorf("version = %v, model value replaced", spec["version"])
	}
	if spec["title"] != "Custom Title" {
		t.Errorf("title = %v, model value replaced", spec["title"])
	}

	block := spec["blocks"].([]any)[0].(map[string]any)
	if block["id"] != "hero" {
		t.Errorf("block id = %v, model value replaced", block["id"])
	}
	if anim := block["animation"].(map[string]any); anim["preset"] != "zoomIn" {
		t.Errorf("animation = %v, model value replaced", anim)
	}

	cfg := spec["animationConfig"].(map[string]any)
	if cfg["enabled"] != false {
		t.Errorf("animationConfig = %v, model value replaced", cfg)
	}
}

func TestNormalizeLandingSpec_StripsImagePrompt(t *testing.T) {
	raw := `{"title": "Rex", "imagePrompt": "a t-rex in golden hour light", "blocks": [{"id": "b1", "type": "paragraph", "text": "hi", "animation": {}}]}`

	spec := normalize(t, raw, "Rex")

	if _, ok := spec["imagePrompt"]; ok {
		t.Error("imagePrompt survived normalization")
	}
}

func TestNormalizeLandingSpec_AnimationConfigDefault(t *testing.T) {
	spec := normalize(t, `{"blocks": [{"id": "b1", "animation": {}}]}`, "Rex")

	cfg, ok := spec["animationConfig"].(map[string]any)
	if !ok {
		t.Fatal("animationConfig missing")
	}
	orchestration := cfg["orchestration"].(map[string]any)
	if orchestration["mode"] != "sequence" {
		t.Errorf("orchestration.mode = %v, want sequence", orchestration["mode"])
	}
	if orchestration["staggerDelay"] != 0.2 {
		t.Errorf("orchestration.staggerDelay = %v, want 0.2", orchestration["staggerDelay"])
	}
}

func TestLandingRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     gemini.LandingRequest
		wantErr bool
	}{
		{
			"valid",
			gemini.LandingRequest{OwnerPrompt: "A warm page about Rex the T-Rex", AgentName: "Rex"},
			false,
		},
		{
			"owner prompt too short",
			gemini.LandingRequest{OwnerPrompt: "short", AgentName: "Rex"},
			true,
		},
		{
			"missing agent name",
			gemini.LandingRequest{OwnerPrompt: "A warm page about Rex the T-Rex"},
			true,
		},
		{
			"agent name too long",
			gemini.LandingRequest{
				OwnerPrompt: "A warm page about Rex the T-Rex",
				AgentName:   string(make([]byte, 81)),
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

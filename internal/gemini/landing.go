package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// LandingDefaults carries optional owner-supplied theme defaults.
type LandingDefaults struct {
	Title      string `json:"title,omitempty"`
	Primary    string `json:"primary,omitempty"`
	Background string `json:"background,omitempty"`
	Text       string `json:"text,omitempty"`
}

// LandingRequest is the input to landing spec generation.
type LandingRequest struct {
	OwnerPrompt string           `json:"ownerPrompt"`
	AgentName   string           `json:"agentName"`
	Defaults    *LandingDefaults `json:"defaults,omitempty"`
}

// Validate enforces the input constraints for landing generation.
func (r LandingRequest) Validate() error {
	if len(r.OwnerPrompt) < 10 {
		return errors.New("ownerPrompt must be at least 10 characters")
	}
	if r.AgentName == "" || len(r.AgentName) > 80 {
		return errors.New("agentName must be between 1 and 80 characters")
	}
	return nil
}

const landingSystemPrompt = `You convert natural descriptions into a LandingSpec JSON for a museum AI exhibit with GSAP animations.

Output ONLY valid JSON matching this EXACT structure:

{
  "version": 1,
  "title": "Agent Name",
  "subtitle": "optional short subtitle",
  "theme": {
    "primary": "#111827",
    "background": "#FFFFFF",
    "text": "#111827"
  },
  "animationConfig": {
    "enabled": true,
    "orchestration": {
      "mode": "sequence",
      "staggerDelay": 0.2
    },
    "scrollTrigger": {
      "enabled": true,
      "smooth": true
    }
  },
  "blocks": [
    {
      "id": "intro-1",
      "type": "paragraph",
      "text": "Welcome text here",
      "animation": {
        "preset": "fadeIn",
        "trigger": { "type": "onload" },
        "enabled": true
      }
    }
  ],
  "imagePrompt": "a detailed image prompt based on the description"
}

ANIMATION GUIDELINES:

1. Animation Presets (use these):
   - "fadeIn": Fade in from transparent
   - "slideUp": Slide up from below with fade
   - "slideDown": Slide down from above
   - "slideLeft": Slide from left
   - "slideRight": Slide from right
   - "scaleIn": Scale up from small
   - "rotateIn": Rotate in with fade
   - "none": No animation

2. Orchestration Modes:
   - "sequence": Blocks animate one after another (storytelling)
   - "stagger": Cascading delay (for lists)
   - "parallel": All at once

3. Trigger Types:
   - "onload": Animate when page loads (use for hero/first elements)
   - "viewport": Animate when element enters viewport (use for scrollable content, threshold 0.3-0.5)
   - "scroll": Advanced scroll-based

4. Best Practices:
   - First block: "fadeIn" with "onload" trigger
   - Feature lists: "slideUp" with "viewport" trigger, threshold 0.3
   - CTAs: "scaleIn" for emphasis
   - Set "once": true for most viewport animations
   - Use 1-3 blocks typically, keep it minimal

5. Block Types:
   - paragraph: {"id": "p1", "type": "paragraph", "text": "..."}
   - bulletList: {"id": "list1", "type": "bulletList", "items": ["..."]}
   - cta: {"id": "cta1", "type": "cta", "label": "...", "href": "..."}

CONTENT RULES:
- Use ONLY hex colors (#RRGGBB format)
- Create 1-3 content blocks with meaningful exhibit information
- Mobile-first, high-contrast, bold colors for Art Deco aesthetic
- Choose rich, luxurious colors (gold #FFD700, navy #000080, emerald #50C878, burgundy #800020, teal #008080)
- IMPORTANT: Generate an "imagePrompt" field with a vivid, detailed description for hero image
  - Include artistic style hints like "oil painting", "digital art", "photograph"
  - Be specific about visual elements, mood, and atmosphere
- Each block MUST have a unique "id" field
- Each block SHOULD have animation metadata`

// GenerateLanding produces a normalized LandingSpec from an owner's natural
// description. Model output is clamped to safe defaults: valid hex colors,
// at least one block, ids and animation metadata on every block.
func (c *Client) GenerateLanding(ctx context.Context, req LandingRequest) (json.RawMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	raw, err := c.generateJSON(ctx, c.defaultModel, landingSystemPrompt+"\n\n"+buildLandingPrompt(req), 0.7)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("landing spec generated", "agent_name", req.AgentName, "bytes", len(raw))

	return NormalizeLandingSpec(raw, req.AgentName)
}

func buildLandingPrompt(req LandingRequest) string {
	lines := []string{"Agent Name: " + req.AgentName}
	if d := req.Defaults; d != nil {
		if d.Title != "" {
			lines = append(lines, "Default Title: "+d.Title)
		}
		if d.Primary != "" {
			lines = append(lines, "Default Primary: "+d.Primary)
		}
		if d.Background != "" {
			lines = append(lines, "Default Background: "+d.Background)
		}
		if d.Text != "" {
			lines = append(lines, "Default Text: "+d.Text)
		}
	}
	lines = append(lines, "Owner Description:", req.OwnerPrompt)
	return strings.Join(lines, "\n")
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func safeHex(v any, fallback string) string {
	s, ok := v.(string)
	if !ok || !hexColor.MatchString(s) {
		return fallback
	}
	return s
}

// NormalizeLandingSpec clamps a model-produced spec to the structure the
// landing renderer expects. Unparseable output degrades to an empty spec
// that is then filled with defaults rather than failing the request.
func NormalizeLandingSpec(raw, agentName string) (json.RawMessage, error) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(raw), &spec); err != nil || spec == nil {
		spec = map[string]any{}
	}

	if _, ok := spec["version"]; !ok {
		spec["version"] = 1
	}
	if _, ok := spec["title"]; !ok {
		spec["title"] = agentName
	}

	theme, _ := spec["theme"].(map[string]any)
	if theme == nil {
		theme = map[string]any{}
	}
	theme["primary"] = safeHex(theme["primary"], "#111827")
	theme["background"] = safeHex(theme["background"], "#FFFFFF")
	theme["text"] = safeHex(theme["text"], "#111827")
	spec["theme"] = theme

	blocks, _ := spec["blocks"].([]any)
	if len(blocks) == 0 {
		blocks = []any{map[string]any{
			"id":   "default-1",
			"type": "paragraph",
			"text": "Welcome to " + agentName + ".",
			"animation": map[string]any{
				"preset":  "fadeIn",
				"trigger": map[string]any{"type": "onload"},
				"enabled": true,
			},
		}}
	}

	for i, b := range blocks {
		block, ok := b.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := block["id"]; !ok {
			block["id"] = fmt.Sprintf("block-%d", i+1)
		}
		if _, ok := block["animation"]; !ok {
			preset := "slideUp"
			trigger := map[string]any{"type": "viewport", "threshold": 0.3, "once": true}
			if i == 0 {
				preset = "fadeIn"
				trigger = map[string]any{"type": "onload", "threshold": 0.3, "once": true}
			}
			block["animation"] = map[string]any{
				"preset":  preset,
				"trigger": trigger,
				"enabled": true,
			}
		}
		blocks[i] = block
	}
	spec["blocks"] = blocks

	if _, ok := spec["animationConfig"]; !ok {
		spec["animationConfig"] = map[string]any{
			"enabled": true,
			"orchestration": map[string]any{
				"mode":         "sequence",
				"staggerDelay": 0.2,
			},
			"scrollTrigger": map[string]any{
				"enabled": true,
				"smooth":  true,
			},
		}
	}

	// The image prompt drives hero generation elsewhere and is not part of
	// the stored spec.
	delete(spec, "imagePrompt")

	out, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal landing spec: %w", err)
	}
	return out, nil
}

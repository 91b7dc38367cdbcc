package vapi_test

import (
	"testing"

	"github.com/docentlabs/docent/internal/agents"
	"github.com/docentlabs/docent/internal/vapi"
)

func toolNames(tools []vapi.Tool) []string {
	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Function.Name
	}
	return names
}

func TestResolveTools_EndCallAlways(t *testing.T) {
	tools := vapi.ResolveTools(&agents.Agent{Tier: 1}, nil, "http://localhost:8080", "secret")

	if len(tools) != 1 {
		t.Fatalf("len(tools) = %d, want 1", len(tools))
	}
	if tools[0].Function.Name != "end_call" {
		t.Errorf("tool = %q, want end_call", tools[0].Function.Name)
	}
	if tools[0].Server != nil {
		t.Error("end_call has a server binding, want none")
	}
	if _, ok := tools[0].Function.Parameters.Properties["reason"]; !ok {
		t.Error("end_call missing reason parameter")
	}
}

func TestResolveTools_TierGating(t *testing.T) {
	allCaps := &agents.Capabilities{
		CanSendEmail:  true,
		CanSendSMS:    true,
		CanTakeOrders: true,
		CanPostSocial: true,
	}

	tests := []struct {
		name string
		tier int
		caps *agents.Capabilities
		want []string
	}{
		{"tier 1 with all flags", 1, allCaps, []string{"end_call"}},
		{"tier 2 with all flags", 2, allCaps, []string{"end_call"}},
		{"tier 3 nil caps", 3, nil, []string{"end_call"}},
		{"tier 3 no flags", 3, &agents.Capabilities{}, []string{"end_call"}},
		{
			"tier 3 all flags in fixed order", 3, allCaps,
			[]string{"end_call", "send_promotional_email", "send_sms", "place_order", "post_to_social"},
		},
		{
			"tier 3 subset", 3,
			&agents.Capabilities{CanSendSMS: true, CanPostSocial: true},
			[]string{"end_call", "send_sms", "post_to_social"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tools := vapi.ResolveTools(&agents.Agent{Tier: tt.tier}, tt.caps, "http://localhost:8080", "secret")
			got := toolNames(tools)
			if len(got) != len(tt.want) {
				t.Fatalf("tools = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("tools[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestResolveTools_Schemas(t *testing.T) {
	caps := &agents.Capabilities{
		CanSendEmail:  true,
		CanSendSMS:    true,
		CanTakeOrders: true,
		CanPostSocial: true,
	}
	tools := vapi.ResolveTools(&agents.Agent{Tier: 3}, caps, "https://api.example.com", "hook-secret")

	byName := map[string]vapi.Tool{}
	for _, tool := range tools {
		byName[tool.Function.Name] = tool
	}

	email := byName["send_promotional_email"]
	if got := email.Function.Parameters.Properties["toEmail"].Format; got != "email" {
		t.Errorf("toEmail format = %q, want email", got)
	}
	if got := len(email.Function.Parameters.Required); got != 3 {
		t.Errorf("email required fields = %d, want 3", got)
	}
	if email.Server == nil || email.Server.URL != "https://api.example.com/api/tools/email" {
		t.Errorf("email server = %+v, want /api/tools/email", email.Server)
	}
	if email.Server.Secret != "hook-secret" {
		t.Errorf("email server secret = %q, want hook-secret", email.Server.Secret)
	}

	sms := byName["send_sms"]
	if got := sms.Function.Parameters.Properties["toPhoneE164"].Description; got != "+1XXXXXXXXXX" {
		t.Errorf("toPhoneE164 description = %q, want +1XXXXXXXXXX", got)
	}
	if sms.Server.URL != "https://api.example.com/api/tools/sms" {
		t.Errorf("sms server url = %q", sms.Server.URL)
	}

	order := byName["place_order"]
	quantity := order.Function.Parameters.Properties["quantity"]
	if quantity.Type != "integer" || quantity.Minimum != 1 {
		t.Errorf("quantity = %+v, want integer with minimum 1", quantity)
	}

	social := byName["post_to_social"]
	network := social.Function.Parameters.Properties["network"]
	wantEnum := []string{"instagram", "facebook", "x"}
	if len(network.Enum) != len(wantEnum) {
		t.Fatalf("network enum = %v, want %v", network.Enum, wantEnum)
	}
	for i, v := range wantEnum {
		if network.Enum[i] != v {
			t.Errorf("network enum[%d] = %q, want %q", i, network.Enum[i], v)
		}
	}
	if got := social.Function.Parameters.Properties["caption"].MaxLength; got != 280 {
		t.Errorf("caption maxLength = %d, want 280", got)
	}

	for _, tool := range tools {
		if tool.Type != "function" {
			t.Errorf("%s type = %q, want function", tool.Function.Name, tool.Type)
		}
		if tool.Function.Parameters.Type != "object" {
			t.Errorf("%s parameters type = %q, want object", tool.Function.Name, tool.Function.Parameters.Type)
		}
	}
}

package agents_test

import (
	"encoding/json"
	"slices"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/agno-seed/internal/agents"
)

func TestPrompt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    agents.Prompt
		wantErr bool
	}{
		{"string", `"be helpful"`, agents.Prompt{"be helpful"}, false},
		{"list", `["be helpful", "be brief"]`, agents.Prompt{"be helpful", "be brief"}, false},
		{"empty list", `[]`, agents.Prompt{}, false},
		{"number", `42`, nil, true},
		{"object", `{"a": "b"}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p agents.Prompt
			err := json.Unmarshal([]byte(tt.input), &p)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Unmarshal(%s) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", tt.input, err)
			}
			if !slices.Equal(p, tt.want) {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, p, tt.want)
			}
		})
	}
}

func TestPrompt_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    agents.Prompt
		wantErr bool
	}{
		{"scalar", "prompt: be helpful\n", agents.Prompt{"be helpful"}, false},
		{"folded scalar", "prompt: >-\n  be\n  helpful\n", agents.Prompt{"be helpful"}, false},
		{"sequence", "prompt:\n  - be helpful\n  - be brief\n", agents.Prompt{"be helpful", "be brief"}, false},
		{"mapping", "prompt:\n  a: b\n", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc struct {
				Prompt agents.Prompt `yaml:"prompt"`
			}
			err := yaml.Unmarshal([]byte(tt.input), &doc)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Unmarshal(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%q) failed: %v", tt.input, err)
			}
			if !slices.Equal(doc.Prompt, tt.want) {
				t.Errorf("Unmarshal(%q) = %q, want %q", tt.input, doc.Prompt, tt.want)
			}
		})
	}
}

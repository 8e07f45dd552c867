package providers_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/JaimeStill/agno-seed/internal/providers"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    providers.Provider
		wantErr error
	}{
		{"canonical", "ollama", providers.Ollama, nil},
		{"mixed case", "OpenAI", providers.OpenAI, nil},
		{"surrounding space", "  anthropic ", providers.Anthropic, nil},
		{"google alias", "google", providers.Gemini, nil},
		{"azure alias", "AzureOpenAI", providers.Azure, nil},
		{"groq", "groq", providers.Groq, nil},
		{"empty", "", "", providers.ErrEmpty},
		{"blank", "   ", "", providers.ErrEmpty},
		{"unknown", "watson", "", providers.ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := providers.Resolve(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Resolve(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolve_UnsupportedListsNames(t *testing.T) {
	_, err := providers.Resolve("watson")
	if !errors.Is(err, providers.ErrUnsupported) {
		t.Fatalf("Resolve() error = %v, want ErrUnsupported", err)
	}
	for _, name := range providers.Names() {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("Resolve() error = %q, want mention of %s", err, name)
		}
	}
}

func TestNames(t *testing.T) {
	names := providers.Names()

	for _, name := range names {
		if _, err := providers.Resolve(name); err != nil {
			t.Errorf("Resolve(%q) failed for listed name: %v", name, err)
		}
	}

	if names[0] != "ollama" {
		t.Errorf("Names()[0] = %q, want ollama", names[0])
	}
}

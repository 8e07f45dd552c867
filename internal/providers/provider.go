// Package providers names the language-model providers the orchestrator can
// build models for. Agent and team configurations reference providers by name.
package providers

import (
	"fmt"
	"slices"
	"strings"
)

// Provider is the canonical name of a model provider.
type Provider string

// Supported providers.
const (
	Ollama    Provider = "ollama"
	OpenAI    Provider = "openai"
	Anthropic Provider = "anthropic"
	Gemini    Provider = "gemini"
	Groq      Provider = "groq"
	Azure     Provider = "azure"
)

var supported = []Provider{Ollama, OpenAI, Anthropic, Gemini, Groq, Azure}

var aliases = map[string]Provider{
	"google":      Gemini,
	"azureopenai": Azure,
}

// Resolve maps a provider name, case-insensitively and through aliases,
// to its canonical Provider.
func Resolve(name string) (Provider, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "", ErrEmpty
	}
	if p, ok := aliases[n]; ok {
		return p, nil
	}
	if p := Provider(n); slices.Contains(supported, p) {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupported, name, strings.Join(Names(), ", "))
}

// Names returns the canonical provider names followed by the accepted aliases.
func Names() []string {
	names := make([]string, 0, len(supported)+len(aliases))
	for _, p := range supported {
		names = append(names, string(p))
	}
	for alias := range aliases {
		names = append(names, alias)
	}
	slices.Sort(names[len(supported):])
	return names
}

// Package agents defines the agent configuration documents the orchestrator
// loads at startup, along with the validation applied before they are seeded.
package agents

import (
	"time"
)

// AgentConfig is a single agent definition.
// Stored field names match what the orchestrator runtime reads.
type AgentConfig struct {
	ID               string    `json:"id" yaml:"id" bson:"id"`
	Name             string    `json:"name" yaml:"name" bson:"nome"`
	Description      string    `json:"description" yaml:"description" bson:"descricao"`
	Model            string    `json:"model" yaml:"model" bson:"model"`
	ModelProvider    string    `json:"modelProvider" yaml:"modelProvider" bson:"factoryIaModel"`
	Prompt           Prompt    `json:"prompt" yaml:"prompt" bson:"prompt"`
	ToolIDs          []string  `json:"toolIds" yaml:"toolIds" bson:"tools_ids"`
	RagConfig        RagConfig `json:"ragConfig" yaml:"ragConfig" bson:"rag_config"`
	UserMemoryActive bool      `json:"userMemoryActive" yaml:"userMemoryActive" bson:"user_memory_active"`
	SummaryActive    bool      `json:"summaryActive" yaml:"summaryActive" bson:"summary_active"`
	Active           bool      `json:"active" yaml:"active" bson:"active"`
	UpdatedAt        time.Time `json:"updatedAt,omitzero" yaml:"updatedAt,omitempty" bson:"updated_at"`
}

// RagConfig toggles retrieval-augmented generation for an agent.
// Fields beyond Active are optional and only meaningful when Active is set.
type RagConfig struct {
	Active        bool   `json:"active" yaml:"active" bson:"active"`
	DocName       string `json:"docName,omitempty" yaml:"docName,omitempty" bson:"doc_name,omitempty"`
	Model         string `json:"model,omitempty" yaml:"model,omitempty" bson:"model,omitempty"`
	ModelProvider string `json:"modelProvider,omitempty" yaml:"modelProvider,omitempty" bson:"factoryIaModel,omitempty"`
}

// Key returns the unique identifier of the agent.
func (a AgentConfig) Key() string {
	return a.ID
}

// Normalize replaces nil collections with empty ones so documents always
// store arrays rather than nulls.
func (a *AgentConfig) Normalize() {
	if a.ToolIDs == nil {
		a.ToolIDs = []string{}
	}
	if a.Prompt == nil {
		a.Prompt = Prompt{}
	}
}

// Stamp sets UpdatedAt to t in UTC, truncated to the millisecond precision the
// database stores.
func (a *AgentConfig) Stamp(t time.Time) {
	a.UpdatedAt = t.UTC().Truncate(time.Millisecond)
}

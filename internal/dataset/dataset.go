// Package dataset loads versioned seed datasets. A dataset is a file listing
// the agent, tool, and team documents to seed and the collections they go to.
// Datasets ship embedded in the binary and may also be read from disk.
package dataset

import (
	"slices"

	"github.com/JaimeStill/agno-seed/internal/agents"
	"github.com/JaimeStill/agno-seed/internal/schema"
	"github.com/JaimeStill/agno-seed/internal/teams"
	"github.com/JaimeStill/agno-seed/internal/tools"
)

// Collection labels used in validation and reference reports.
const (
	CollectionAgents = "agents"
	CollectionTools  = "tools"
	CollectionTeams  = "teams"
)

// Dataset is one version of the seed documents.
type Dataset struct {
	Version     string               `json:"version" yaml:"version"`
	Description string               `json:"description" yaml:"description"`
	Collections schema.Names         `json:"collections" yaml:"collections"`
	Agents      []agents.AgentConfig `json:"agents" yaml:"agents"`
	Tools       []tools.Tool         `json:"tools" yaml:"tools"`
	Teams       []teams.TeamConfig   `json:"teams" yaml:"teams"`
}

// Normalize fills default collection names and normalizes every document.
func (d *Dataset) Normalize() {
	d.Collections = d.Collections.WithDefaults()
	for i := range d.Agents {
		d.Agents[i].Normalize()
	}
	for i := range d.Tools {
		d.Tools[i].Normalize()
	}
	for i := range d.Teams {
		d.Teams[i].Normalize()
	}
}

// Normalized returns a normalized copy of d. The document slices are
// cloned, so d is left untouched.
func (d *Dataset) Normalized() *Dataset {
	c := *d
	c.Agents = slices.Clone(d.Agents)
	c.Tools = slices.Clone(d.Tools)
	c.Teams = slices.Clone(d.Teams)
	c.Normalize()
	return &c
}

// Counts returns the number of documents per seeded collection.
func (d *Dataset) Counts() (agentCount, toolCount, teamCount int) {
	return len(d.Agents), len(d.Tools), len(d.Teams)
}

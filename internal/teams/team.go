// Package teams defines multi-agent team documents. A team routes or
// coordinates requests across its member agents.
package teams

// Mode is the dispatch strategy of a team.
type Mode string

// Team modes.
const (
	ModeRoute      Mode = "route"
	ModeCoordinate Mode = "coordinate"
	ModeBroadcast  Mode = "broadcast"
	ModeTasks      Mode = "tasks"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeRoute, ModeCoordinate, ModeBroadcast, ModeTasks:
		return true
	default:
		return false
	}
}

// TeamConfig is a single team definition. MemberIDs are soft references to
// agent ids and are resolved by the runtime when the team is built.
type TeamConfig struct {
	ID               string   `json:"id" yaml:"id" bson:"id"`
	Name             string   `json:"name" yaml:"name" bson:"nome"`
	Mode             Mode     `json:"mode" yaml:"mode" bson:"mode"`
	Model            string   `json:"model" yaml:"model" bson:"model"`
	ModelProvider    string   `json:"modelProvider" yaml:"modelProvider" bson:"factoryIaModel"`
	Description      string   `json:"description" yaml:"description" bson:"descricao"`
	Prompt           string   `json:"prompt" yaml:"prompt" bson:"prompt"`
	MemberIDs        []string `json:"memberIds" yaml:"memberIds" bson:"memberIds"`
	UserMemoryActive bool     `json:"userMemoryActive" yaml:"userMemoryActive" bson:"userMemoryActive"`
	SummaryActive    bool     `json:"summaryActive" yaml:"summaryActive" bson:"summaryActive"`
	Active           bool     `json:"active" yaml:"active" bson:"active"`
}

// Key returns the unique identifier of the team.
func (t TeamConfig) Key() string {
	return t.ID
}

// Normalize defaults the mode to route and replaces a nil member list.
func (t *TeamConfig) Normalize() {
	if t.Mode == "" {
		t.Mode = ModeRoute
	}
	if t.MemberIDs == nil {
		t.MemberIDs = []string{}
	}
}

package schema_test

import (
	"testing"

	"github.com/JaimeStill/agno-seed/internal/schema"
)

func TestSeededCollections_UniqueID(t *testing.T) {
	tests := []struct {
		name string
		coll schema.Collection
		want int
	}{
		{"agents", schema.Agents("agents_config"), 3},
		{"tools", schema.Tools("tools"), 2},
		{"teams", schema.Teams("teams_config"), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.coll.Indexes) != tt.want {
				t.Errorf("len(Indexes) = %d, want %d", len(tt.coll.Indexes), tt.want)
			}
			if !tt.coll.Indexes[0].Equal(schema.Unique("id")) {
				t.Errorf("Indexes[0] = %s, want {id: 1} unique", tt.coll.Indexes[0])
			}
		})
	}
}

func TestRuntime(t *testing.T) {
	tests := []struct {
		name      string
		unique    string
		secondary []string
		recency   bool
	}{
		{schema.SessionsCollection, "session_id", []string{"user_id", "agent_id", "team_id"}, true},
		{schema.MemoriesCollection, "memory_id", []string{"user_id", "agent_id"}, true},
		{schema.TracesCollection, "trace_id", []string{"session_id", "agent_id", "team_id"}, true},
		{schema.SpansCollection, "span_id", []string{"trace_id"}, true},
		{schema.EmbeddingsCollection, "", []string{"name", "content_hash"}, false},
	}

	colls := schema.Runtime()
	if len(colls) != len(tests) {
		t.Fatalf("len(Runtime()) = %d, want %d", len(colls), len(tests))
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := colls[i]
			if c.Name != tt.name {
				t.Fatalf("Name = %q, want %q", c.Name, tt.name)
			}

			has := func(want schema.Index) bool {
				for _, idx := range c.Indexes {
					if idx.Equal(want) {
						return true
					}
				}
				return false
			}

			if tt.unique != "" && !has(schema.Unique(tt.unique)) {
				t.Errorf("missing unique index on %s", tt.unique)
			}
			for _, f := range tt.secondary {
				if !has(schema.Asc(f)) {
					t.Errorf("missing index on %s", f)
				}
			}
			if got := has(schema.Desc("created_at")); got != tt.recency {
				t.Errorf("has created_at desc = %v, want %v", got, tt.recency)
			}
		})
	}
}

func TestNames_WithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   schema.Names
		want schema.Names
	}{
		{"empty", schema.Names{}, schema.DefaultNames},
		{
			"partial",
			schema.Names{Tools: "tools_config"},
			schema.Names{Agents: "agents_config", Tools: "tools_config", Teams: "teams_config"},
		},
		{
			"complete",
			schema.Names{Agents: "a", Tools: "b", Teams: "c"},
			schema.Names{Agents: "a", Tools: "b", Teams: "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.WithDefaults(); got != tt.want {
				t.Errorf("WithDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

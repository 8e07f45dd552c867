package schema

// Runtime collection names. These are written by the orchestrator runtime,
// never by the seeder.
const (
	SessionsCollection   = "agno_sessions"
	MemoriesCollection   = "agno_memories"
	TracesCollection     = "agno_traces"
	SpansCollection      = "agno_spans"
	EmbeddingsCollection = "rag"
)

// Collection is a collection together with its index declarations.
type Collection struct {
	Name    string
	Indexes []Index
}

// Names holds the names of the three seeded collections. They vary between
// dataset versions.
type Names struct {
	Agents string `json:"agents" yaml:"agents"`
	Tools  string `json:"tools" yaml:"tools"`
	Teams  string `json:"teams" yaml:"teams"`
}

// DefaultNames are the collection names the orchestrator reads by default.
var DefaultNames = Names{
	Agents: "agents_config",
	Tools:  "tools",
	Teams:  "teams_config",
}

// WithDefaults fills empty names from DefaultNames.
func (n Names) WithDefaults() Names {
	if n.Agents == "" {
		n.Agents = DefaultNames.Agents
	}
	if n.Tools == "" {
		n.Tools = DefaultNames.Tools
	}
	if n.Teams == "" {
		n.Teams = DefaultNames.Teams
	}
	return n
}

// Agents declares the agent configuration collection.
func Agents(name string) Collection {
	return Collection{
		Name: name,
		Indexes: []Index{
			Unique("id"),
			Asc("active"),
			Asc("factoryIaModel"),
		},
	}
}

// Tools declares the tool collection.
func Tools(name string) Collection {
	return Collection{
		Name: name,
		Indexes: []Index{
			Unique("id"),
			Asc("name"),
		},
	}
}

// Teams declares the team configuration collection.
func Teams(name string) Collection {
	return Collection{
		Name: name,
		Indexes: []Index{
			Unique("id"),
			Asc("active"),
		},
	}
}

// Runtime declares the collections the orchestrator runtime writes to.
// Each has a unique primary key, secondary indexes on the owning user, agent
// or team, and a descending creation-time index for recency queries. The
// embeddings store indexes document names and content hashes instead.
func Runtime() []Collection {
	return []Collection{
		{
			Name: SessionsCollection,
			Indexes: []Index{
				Unique("session_id"),
				Asc("user_id"),
				Asc("agent_id"),
				Asc("team_id"),
				Desc("created_at"),
			},
		},
		{
			Name: MemoriesCollection,
			Indexes: []Index{
				Unique("memory_id"),
				Asc("user_id"),
				Asc("agent_id"),
				Desc("created_at"),
			},
		},
		{
			Name: TracesCollection,
			Indexes: []Index{
				Unique("trace_id"),
				Asc("session_id"),
				Asc("agent_id"),
				Asc("team_id"),
				Desc("created_at"),
			},
		},
		{
			Name: SpansCollection,
			Indexes: []Index{
				Unique("span_id"),
				Asc("trace_id"),
				Desc("created_at"),
			},
		},
		{
			Name: EmbeddingsCollection,
			Indexes: []Index{
				Asc("name"),
				Asc("content_hash"),
			},
		},
	}
}

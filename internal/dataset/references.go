package dataset

import "fmt"

// Reference is a soft reference from one document to another by id.
type Reference struct {
	Collection string
	ID         string
	Field      string
	Target     string
}

func (r Reference) String() string {
	return fmt.Sprintf("%s %q %s -> %q", r.Collection, r.ID, r.Field, r.Target)
}

// Unresolved returns the references in the dataset whose target is not
// defined in the same dataset: agent tool ids missing from the tools list and
// team member ids missing from the agents list.
//
// Unresolved references are legal. The target may be seeded separately, and
// the runtime skips ids it cannot find when it builds an agent or team.
func (d *Dataset) Unresolved() []Reference {
	toolIDs := make(map[string]bool, len(d.Tools))
	for _, t := range d.Tools {
		toolIDs[t.ID] = true
	}
	agentIDs := make(map[string]bool, len(d.Agents))
	for _, a := range d.Agents {
		agentIDs[a.ID] = true
	}

	var refs []Reference
	for _, a := range d.Agents {
		for _, id := range a.ToolIDs {
			if !toolIDs[id] {
				refs = append(refs, Reference{CollectionAgents, a.ID, "toolIds", id})
			}
		}
	}
	for _, t := range d.Teams {
		for _, id := range t.MemberIDs {
			if !agentIDs[id] {
				refs = append(refs, Reference{CollectionTeams, t.ID, "memberIds", id})
			}
		}
	}
	return refs
}

package agents

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Prompt is an ordered list of instructions. In seed files it may be written
// as a single string or as a list of strings; both decode to a Prompt.
type Prompt []string

// UnmarshalJSON accepts a JSON string or array of strings.
func (p *Prompt) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*p = Prompt{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("prompt must be a string or a list of strings: %w", err)
	}
	*p = Prompt(list)
	return nil
}

// UnmarshalYAML accepts a YAML scalar or sequence of scalars.
func (p *Prompt) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*p = Prompt{single}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*p = Prompt(list)
		return nil
	default:
		return fmt.Errorf("line %d: prompt must be a string or a list of strings", node.Line)
	}
}

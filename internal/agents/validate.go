package agents

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JaimeStill/agno-seed/internal/providers"
)

// Validate checks the agent for the fields the orchestrator requires.
// Tool ids are soft references and are not resolved here.
func (a *AgentConfig) Validate() error {
	var errs []error

	if strings.TrimSpace(a.ID) == "" {
		errs = append(errs, &FieldError{"id", "required"})
	}
	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, &FieldError{"name", "required"})
	}
	if strings.TrimSpace(a.Model) == "" {
		errs = append(errs, &FieldError{"model", "required"})
	}
	if _, err := providers.Resolve(a.ModelProvider); err != nil {
		errs = append(errs, &FieldError{"modelProvider", err.Error()})
	}

	if len(a.Prompt) == 0 {
		errs = append(errs, &FieldError{"prompt", "at least one instruction required"})
	}
	for i, instruction := range a.Prompt {
		if strings.TrimSpace(instruction) == "" {
			errs = append(errs, &FieldError{fmt.Sprintf("prompt[%d]", i), "blank instruction"})
		}
	}

	for i, id := range a.ToolIDs {
		if strings.TrimSpace(id) == "" {
			errs = append(errs, &FieldError{fmt.Sprintf("toolIds[%d]", i), "blank tool id"})
		}
	}

	if err := a.RagConfig.validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (r *RagConfig) validate() error {
	if !r.Active {
		return nil
	}
	if strings.TrimSpace(r.DocName) == "" {
		return &FieldError{"ragConfig.docName", "required when rag is active"}
	}
	if r.ModelProvider != "" {
		if _, err := providers.Resolve(r.ModelProvider); err != nil {
			return &FieldError{"ragConfig.modelProvider", err.Error()}
		}
	}
	return nil
}

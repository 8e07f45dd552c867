package teams

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JaimeStill/agno-seed/internal/providers"
)

// Validate checks the team definition. Member ids must be present and
// distinct but are not resolved against the agent collection.
func (t *TeamConfig) Validate() error {
	var errs []error

	if strings.TrimSpace(t.ID) == "" {
		errs = append(errs, &FieldError{"id", "required"})
	}
	if strings.TrimSpace(t.Name) == "" {
		errs = append(errs, &FieldError{"name", "required"})
	}
	if strings.TrimSpace(t.Model) == "" {
		errs = append(errs, &FieldError{"model", "required"})
	}
	if _, err := providers.Resolve(t.ModelProvider); err != nil {
		errs = append(errs, &FieldError{"modelProvider", err.Error()})
	}
	if !t.Mode.Valid() {
		errs = append(errs, &FieldError{"mode", fmt.Sprintf("invalid mode %q (route, coordinate, broadcast, tasks)", t.Mode)})
	}

	if len(t.MemberIDs) == 0 {
		errs = append(errs, &FieldError{"memberIds", "at least one member required"})
	}
	seen := make(map[string]bool, len(t.MemberIDs))
	for i, id := range t.MemberIDs {
		switch {
		case strings.TrimSpace(id) == "":
			errs = append(errs, &FieldError{fmt.Sprintf("memberIds[%d]", i), "blank member id"})
		case seen[id]:
			errs = append(errs, &FieldError{fmt.Sprintf("memberIds[%d]", i), fmt.Sprintf("duplicate member %q", id)})
		}
		seen[id] = true
	}

	return errors.Join(errs...)
}

package dataset

import (
	"errors"
	"fmt"
	"strings"
)

type validatable interface {
	Key() string
	Validate() error
}

// Validate checks every document and the uniqueness of ids within each
// collection. All failures are returned together; each is a *ValidationError.
func (d *Dataset) Validate() error {
	var errs []error

	if strings.TrimSpace(d.Collections.Agents) == "" ||
		strings.TrimSpace(d.Collections.Tools) == "" ||
		strings.TrimSpace(d.Collections.Teams) == "" {
		errs = append(errs, errors.New("collections: agents, tools, and teams names required"))
	}

	errs = append(errs, validateAll(CollectionAgents, d.Agents)...)
	errs = append(errs, validateAll(CollectionTools, d.Tools)...)
	errs = append(errs, validateAll(CollectionTeams, d.Teams)...)

	return errors.Join(errs...)
}

func validateAll[T any, P interface {
	*T
	validatable
}](collection string, docs []T) []error {
	var errs []error
	first := make(map[string]int, len(docs))

	for i := range docs {
		doc := P(&docs[i])
		id := doc.Key()

		if err := doc.Validate(); err != nil {
			errs = append(errs, &ValidationError{
				Collection: collection,
				Position:   i,
				ID:         id,
				Err:        err,
			})
		}

		if id == "" {
			continue
		}
		if prev, ok := first[id]; ok {
			errs = append(errs, &ValidationError{
				Collection: collection,
				Position:   i,
				ID:         id,
				Err:        fmt.Errorf("%w: first defined at position %d", ErrDuplicateID, prev),
			})
			continue
		}
		first[id] = i
	}

	return errs
}

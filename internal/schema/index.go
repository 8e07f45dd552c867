// Package schema declares the collections the seeder provisions and the
// indexes each one carries.
package schema

import (
	"fmt"
	"strings"
)

// Direction is the sort order of an index key.
type Direction int

// Index key directions.
const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// Key is a single field of an index.
type Key struct {
	Field     string
	Direction Direction
}

// Index is an index declaration. ExpireAfterSeconds of zero means the index
// has no TTL. Partial filter expressions and collations are not modelled, so
// an existing index that carries one compares equal to a declaration with the
// same keys and options.
type Index struct {
	Keys               []Key
	Unique             bool
	Sparse             bool
	ExpireAfterSeconds int32
}

// Asc declares a non-unique ascending index on field.
func Asc(field string) Index {
	return Index{Keys: []Key{{field, Ascending}}}
}

// Desc declares a non-unique descending index on field.
func Desc(field string) Index {
	return Index{Keys: []Key{{field, Descending}}}
}

// Unique declares a unique ascending index on field.
func Unique(field string) Index {
	return Index{Keys: []Key{{field, Ascending}}, Unique: true}
}

// Name returns the name the database assigns by default: each field followed
// by its direction, joined with underscores (e.g. "created_at_-1").
func (i Index) Name() string {
	parts := make([]string, 0, len(i.Keys)*2)
	for _, k := range i.Keys {
		parts = append(parts, k.Field, fmt.Sprint(int(k.Direction)))
	}
	return strings.Join(parts, "_")
}

// Fields returns the indexed field names in key order.
func (i Index) Fields() []string {
	fields := make([]string, len(i.Keys))
	for n, k := range i.Keys {
		fields[n] = k.Field
	}
	return fields
}

// String renders the declaration as it would appear in a shell, such as
// `{id: 1} unique`.
func (i Index) String() string {
	keys := make([]string, len(i.Keys))
	for n, k := range i.Keys {
		keys[n] = fmt.Sprintf("%s: %d", k.Field, k.Direction)
	}
	s := "{" + strings.Join(keys, ", ") + "}"
	if i.Unique {
		s += " unique"
	}
	if i.Sparse {
		s += " sparse"
	}
	if i.ExpireAfterSeconds > 0 {
		s += fmt.Sprintf(" ttl=%ds", i.ExpireAfterSeconds)
	}
	return s
}

// Equal reports whether two declarations have the same keys and options.
func (i Index) Equal(other Index) bool {
	if i.Unique != other.Unique || i.Sparse != other.Sparse || i.ExpireAfterSeconds != other.ExpireAfterSeconds {
		return false
	}
	if len(i.Keys) != len(other.Keys) {
		return false
	}
	for n := range i.Keys {
		if i.Keys[n] != other.Keys[n] {
			return false
		}
	}
	return true
}

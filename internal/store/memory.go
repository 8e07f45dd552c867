package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/JaimeStill/agno-seed/internal/schema"
)

// Memory is an in-process System. Documents are encoded to BSON the same way
// the MongoDB store encodes them, and unique indexes are enforced on write.
// It backs dry runs and tests.
type Memory struct {
	mu          sync.Mutex
	collections map[string]*memCollection
}

type memCollection struct {
	docs    []bson.M
	indexes []schema.Index
}

var _ System = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]*memCollection)}
}

func (m *Memory) collection(name string) *memCollection {
	c, ok := m.collections[name]
	if !ok {
		c = &memCollection{}
		m.collections[name] = c
	}
	return c
}

func (m *Memory) InsertMany(ctx context.Context, collection, keyField string, docs []Document) (WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return WriteResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.collection(collection)

	var result WriteResult
	var errs []error
	for i, d := range docs {
		doc, err := encode(d)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: document %d: %v", ErrInvalidDocument, i, err))
			continue
		}
		if field, ok := c.violates(doc, -1); ok {
			errs = append(errs, &DuplicateKeyError{Collection: collection, Field: field, Key: d.Key(), Position: i})
			continue
		}
		c.docs = append(c.docs, doc)
		result.Inserted++
	}

	return result, errors.Join(errs...)
}

func (m *Memory) UpsertMany(ctx context.Context, collection, keyField string, docs []Document) (WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return WriteResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.collection(collection)

	var result WriteResult
	var errs []error
	for i, d := range docs {
		doc, err := encode(d)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: document %d: %v", ErrInvalidDocument, i, err))
			continue
		}

		at := c.find(keyField, d.Key())
		if field, ok := c.violates(doc, at); ok {
			errs = append(errs, &DuplicateKeyError{Collection: collection, Field: field, Key: d.Key(), Position: i})
			continue
		}

		if at >= 0 {
			c.docs[at] = doc
			result.Matched++
		} else {
			c.docs = append(c.docs, doc)
			result.Upserted++
		}
	}

	return result, errors.Join(errs...)
}

func (m *Memory) EnsureCollection(ctx context.Context, collection string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.collections[collection]; ok {
		return false, nil
	}
	m.collections[collection] = &memCollection{}
	return true, nil
}

func (m *Memory) EnsureIndex(ctx context.Context, collection string, index schema.Index) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.collection(collection)
	for _, current := range c.indexes {
		if current.Name() != index.Name() && !keysEqual(current, index) {
			continue
		}
		if current.Equal(index) {
			return false, nil
		}
		return false, &IndexConflictError{
			Collection:   collection,
			Requested:    index,
			ExistingName: current.Name(),
			Existing:     current,
		}
	}

	if index.Unique {
		seen := make(map[string]bool, len(c.docs))
		for _, doc := range c.docs {
			if skipsSparse(doc, index) {
				continue
			}
			k := indexKey(doc, index)
			if seen[k] {
				return false, fmt.Errorf("create index %s on %s: %w", index.Name(), collection, ErrDuplicateKey)
			}
			seen[k] = true
		}
	}

	c.indexes = append(c.indexes, index)
	return true, nil
}

func (m *Memory) Count(ctx context.Context, collection string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[collection]
	if !ok {
		return 0, nil
	}
	return int64(len(c.docs)), nil
}

// Collections returns the names of all collections, sorted.
func (m *Memory) Collections() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Indexes returns the declared indexes of a collection in creation order.
func (m *Memory) Indexes(collection string) []schema.Index {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.collections[collection]; ok {
		return slices.Clone(c.indexes)
	}
	return nil
}

// Find returns the stored document whose field equals value.
func (m *Memory) Find(collection, field string, value any) (bson.M, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[collection]
	if !ok {
		return nil, false
	}
	for _, doc := range c.docs {
		if fmt.Sprint(doc[field]) == fmt.Sprint(value) {
			return doc, true
		}
	}
	return nil, false
}

func (c *memCollection) find(field, value string) int {
	for i, doc := range c.docs {
		if v, ok := doc[field].(string); ok && v == value {
			return i
		}
	}
	return -1
}

// violates reports the first field of a unique index doc would collide on.
// The document at position skip is ignored, so a replacement does not
// collide with the document it replaces.
func (c *memCollection) violates(doc bson.M, skip int) (string, bool) {
	for _, index := range c.indexes {
		if !index.Unique || skipsSparse(doc, index) {
			continue
		}
		k := indexKey(doc, index)
		for i, existing := range c.docs {
			if i != skip && indexKey(existing, index) == k {
				return index.Keys[0].Field, true
			}
		}
	}
	return "", false
}

// skipsSparse reports whether a sparse index leaves doc out: a document is
// indexed when it holds at least one of the indexed fields.
func skipsSparse(doc bson.M, index schema.Index) bool {
	if !index.Sparse {
		return false
	}
	for _, f := range index.Fields() {
		if _, ok := doc[f]; ok {
			return false
		}
	}
	return true
}

// indexKey renders the indexed values of doc. Missing fields index as null,
// as they do in the database.
func indexKey(doc bson.M, index schema.Index) string {
	values := make([]any, len(index.Keys))
	for i, k := range index.Keys {
		values[i] = doc[k.Field]
	}
	return fmt.Sprintf("%v", values)
}

func encode(d Document) (bson.M, error) {
	raw, err := bson.Marshal(d)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

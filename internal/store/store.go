// Package store is the boundary between the seeder and the document database.
// It exposes only the operations seeding needs: bulk insert, bulk upsert by
// key, create-if-absent for collections and indexes, and document counts.
package store

import (
	"context"

	"github.com/JaimeStill/agno-seed/internal/schema"
)

// Document is a seed document identified by a unique key.
type Document interface {
	Key() string
}

// WriteResult summarizes a bulk write.
type WriteResult struct {
	Inserted int
	Matched  int
	Upserted int
}

// Written returns the number of documents that now hold the written values.
func (r WriteResult) Written() int {
	return r.Inserted + r.Matched + r.Upserted
}

// System defines the database operations used for seeding.
type System interface {
	// InsertMany inserts docs without stopping at the first failure. Each
	// document that collides with a unique index produces a *DuplicateKeyError;
	// the rest are inserted. keyField names the field holding Document.Key.
	InsertMany(ctx context.Context, collection, keyField string, docs []Document) (WriteResult, error)

	// UpsertMany replaces each document whose keyField equals its Key, or
	// inserts it when none exists.
	UpsertMany(ctx context.Context, collection, keyField string, docs []Document) (WriteResult, error)

	// EnsureCollection creates the collection when absent.
	// It reports whether the collection was created.
	EnsureCollection(ctx context.Context, collection string) (bool, error)

	// EnsureIndex declares an index. An identical existing index is a no-op.
	// An existing index with the same name or keys but different options
	// yields an *IndexConflictError. It reports whether the index was created.
	EnsureIndex(ctx context.Context, collection string, index schema.Index) (bool, error)

	// Count returns the number of documents in the collection.
	Count(ctx context.Context, collection string) (int64, error)
}

// Documents converts a slice of documents to the interface slice System accepts.
func Documents[T Document](docs []T) []Document {
	out := make([]Document, len(docs))
	for i, d := range docs {
		out[i] = d
	}
	return out
}

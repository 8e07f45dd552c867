package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JaimeStill/agno-seed/internal/schema"
)

// Server error codes handled explicitly.
const (
	codeNamespaceExists       = 48
	codeIndexOptionsConflict  = 85
	codeIndexKeySpecsConflict = 86
)

var dupKeyPattern = regexp.MustCompile(`dup key: \{ ?"?([A-Za-z0-9_.]+)"?:`)

type mongoStore struct {
	db      *mongo.Database
	timeout time.Duration
	logger  *slog.Logger
}

// NewMongo returns a System backed by db. Every database round-trip is bounded
// by timeout; a zero timeout leaves the caller's context in charge.
func NewMongo(db *mongo.Database, timeout time.Duration, logger *slog.Logger) System {
	return &mongoStore{
		db:      db,
		timeout: timeout,
		logger:  logger.With("system", "store", "database", db.Name()),
	}
}

func (s *mongoStore) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *mongoStore) InsertMany(ctx context.Context, collection, keyField string, docs []Document) (WriteResult, error) {
	if len(docs) == 0 {
		return WriteResult{}, nil
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	values := make([]any, len(docs))
	for i, d := range docs {
		values[i] = d
	}

	_, err := s.db.Collection(collection).InsertMany(ctx, values, options.InsertMany().SetOrdered(false))
	if err == nil {
		s.logger.Debug("documents inserted", "collection", collection, "count", len(docs))
		return WriteResult{Inserted: len(docs)}, nil
	}

	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) || bwe.WriteConcernError != nil {
		return WriteResult{}, fmt.Errorf("insert into %s: %w", collection, err)
	}

	errs := make([]error, 0, len(bwe.WriteErrors))
	for _, we := range bwe.WriteErrors {
		errs = append(errs, writeError(collection, keyField, docs, we.WriteError))
	}
	return WriteResult{Inserted: len(docs) - len(bwe.WriteErrors)}, errors.Join(errs...)
}

func (s *mongoStore) UpsertMany(ctx context.Context, collection, keyField string, docs []Document) (WriteResult, error) {
	if len(docs) == 0 {
		return WriteResult{}, nil
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	models := make([]mongo.WriteModel, len(docs))
	for i, d := range docs {
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: keyField, Value: d.Key()}}).
			SetReplacement(d).
			SetUpsert(true)
	}

	res, err := s.db.Collection(collection).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))

	var result WriteResult
	if res != nil {
		result = WriteResult{
			Matched:  int(res.MatchedCount),
			Upserted: int(res.UpsertedCount),
		}
	}
	if err == nil {
		s.logger.Debug("documents upserted", "collection", collection, "matched", result.Matched, "upserted", result.Upserted)
		return result, nil
	}

	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) || bwe.WriteConcernError != nil {
		return result, fmt.Errorf("upsert into %s: %w", collection, err)
	}

	errs := make([]error, 0, len(bwe.WriteErrors))
	for _, we := range bwe.WriteErrors {
		errs = append(errs, writeError(collection, keyField, docs, we.WriteError))
	}
	return result, errors.Join(errs...)
}

func (s *mongoStore) EnsureCollection(ctx context.Context, collection string) (bool, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	names, err := s.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: collection}})
	if err != nil {
		return false, fmt.Errorf("list collections: %w", err)
	}
	if len(names) > 0 {
		return false, nil
	}

	if err := s.db.CreateCollection(ctx, collection); err != nil {
		var ce mongo.CommandError
		if errors.As(err, &ce) && ce.HasErrorCode(codeNamespaceExists) {
			return false, nil
		}
		return false, fmt.Errorf("create collection %s: %w", collection, err)
	}

	s.logger.Info("collection created", "collection", collection)
	return true, nil
}

func (s *mongoStore) EnsureIndex(ctx context.Context, collection string, index schema.Index) (bool, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	view := s.db.Collection(collection).Indexes()

	existing, err := s.existing(ctx, view, collection, index)
	if err != nil {
		return false, err
	}
	if existing {
		return false, nil
	}

	opts := options.Index().SetName(index.Name())
	if index.Unique {
		opts.SetUnique(true)
	}
	if index.Sparse {
		opts.SetSparse(true)
	}
	if index.ExpireAfterSeconds > 0 {
		opts.SetExpireAfterSeconds(index.ExpireAfterSeconds)
	}

	_, err = view.CreateOne(ctx, mongo.IndexModel{Keys: keysDocument(index), Options: opts})
	if err != nil {
		var ce mongo.CommandError
		if errors.As(err, &ce) && (ce.HasErrorCode(codeIndexOptionsConflict) || ce.HasErrorCode(codeIndexKeySpecsConflict)) {
			if _, lookupErr := s.existing(ctx, view, collection, index); lookupErr != nil {
				return false, lookupErr
			}
			return false, &IndexConflictError{Collection: collection, Requested: index, ExistingName: index.Name()}
		}
		return false, fmt.Errorf("create index %s on %s: %w", index.Name(), collection, err)
	}

	s.logger.Info("index created", "collection", collection, "index", index.Name(), "spec", index.String())
	return true, nil
}

// existing reports whether an index equal to index is already present. It
// returns an *IndexConflictError when an index with the same name or the same
// keys differs from the declaration.
func (s *mongoStore) existing(ctx context.Context, view mongo.IndexView, collection string, index schema.Index) (bool, error) {
	specs, err := view.ListSpecifications(ctx)
	if err != nil {
		return false, fmt.Errorf("list indexes on %s: %w", collection, err)
	}

	for _, spec := range specs {
		current := indexFromSpec(spec)
		sameName := spec.Name == index.Name()
		sameKeys := keysEqual(current, index)

		if !sameName && !sameKeys {
			continue
		}
		if current.Equal(index) {
			return true, nil
		}
		return false, &IndexConflictError{
			Collection:   collection,
			Requested:    index,
			ExistingName: spec.Name,
			Existing:     current,
		}
	}
	return false, nil
}

func (s *mongoStore) Count(ctx context.Context, collection string) (int64, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

func keysDocument(index schema.Index) bson.D {
	keys := make(bson.D, len(index.Keys))
	for i, k := range index.Keys {
		keys[i] = bson.E{Key: k.Field, Value: int32(k.Direction)}
	}
	return keys
}

// indexFromSpec converts a listed index into a declaration. Options the
// driver does not surface on IndexSpecification, such as
// partialFilterExpression, are not carried.
func indexFromSpec(spec *mongo.IndexSpecification) schema.Index {
	var index schema.Index
	if spec.Unique != nil {
		index.Unique = *spec.Unique
	}
	if spec.Sparse != nil {
		index.Sparse = *spec.Sparse
	}
	if spec.ExpireAfterSeconds != nil {
		index.ExpireAfterSeconds = *spec.ExpireAfterSeconds
	}

	elems, err := spec.KeysDocument.Elements()
	if err != nil {
		return index
	}
	for _, e := range elems {
		dir, _ := e.Value().AsInt64OK()
		index.Keys = append(index.Keys, schema.Key{Field: e.Key(), Direction: schema.Direction(dir)})
	}
	return index
}

func keysEqual(a, b schema.Index) bool {
	return schema.Index{Keys: a.Keys}.Equal(schema.Index{Keys: b.Keys})
}

func writeError(collection, keyField string, docs []Document, we mongo.WriteError) error {
	if !we.HasErrorCode(11000) && !we.HasErrorCode(11001) {
		return fmt.Errorf("write to %s (document %d): %w", collection, we.Index, we)
	}

	field := keyField
	if m := dupKeyPattern.FindStringSubmatch(we.Message); m != nil {
		field = m[1]
	}

	var key string
	if we.Index >= 0 && we.Index < len(docs) {
		key = docs[we.Index].Key()
	}

	return &DuplicateKeyError{
		Collection: collection,
		Field:      field,
		Key:        key,
		Position:   we.Index,
	}
}

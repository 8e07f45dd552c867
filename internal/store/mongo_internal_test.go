package store

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/JaimeStill/agno-seed/internal/schema"
)

type keyed string

func (k keyed) Key() string { return string(k) }

func TestWriteError_DuplicateKey(t *testing.T) {
	docs := []Document{keyed("general-assistant"), keyed("weather-tool")}

	tests := []struct {
		name      string
		we        mongo.WriteError
		wantField string
		wantKey   string
	}{
		{
			"field from message",
			mongo.WriteError{
				Index:   1,
				Code:    11000,
				Message: `E11000 duplicate key error collection: agno.tools index: id_1 dup key: { id: "weather-tool" }`,
			},
			"id",
			"weather-tool",
		},
		{
			"quoted field",
			mongo.WriteError{
				Index:   0,
				Code:    11000,
				Message: `E11000 duplicate key error collection: agno.agents_config index: nome_1 dup key: { "nome": "General" }`,
			},
			"nome",
			"general-assistant",
		},
		{
			"fallback to key field",
			mongo.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"},
			"id",
			"general-assistant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := writeError("tools", "id", docs, tt.we)

			var dk *DuplicateKeyError
			if !errors.As(err, &dk) {
				t.Fatalf("writeError() = %v, want *DuplicateKeyError", err)
			}
			if dk.Field != tt.wantField || dk.Key != tt.wantKey || dk.Position != tt.we.Index {
				t.Errorf("DuplicateKeyError = %+v, want field %s key %s position %d", *dk, tt.wantField, tt.wantKey, tt.we.Index)
			}
		})
	}
}

func TestWriteError_Other(t *testing.T) {
	we := mongo.WriteError{Index: 0, Code: 121, Message: "Document failed validation"}

	err := writeError("tools", "id", []Document{keyed("a")}, we)
	if errors.Is(err, ErrDuplicateKey) {
		t.Errorf("writeError() = %v, want non-duplicate error", err)
	}
	var target mongo.WriteError
	if !errors.As(err, &target) || target.Code != 121 {
		t.Errorf("writeError() does not wrap the driver error: %v", err)
	}
}

func TestIndexFromSpec(t *testing.T) {
	unique := true
	sparse := true
	ttl := int32(3600)

	keys, err := bson.Marshal(bson.D{{Key: "created_at", Value: int32(-1)}, {Key: "user_id", Value: 1.0}})
	if err != nil {
		t.Fatalf("marshal keys: %v", err)
	}

	tests := []struct {
		name string
		spec *mongo.IndexSpecification
		want schema.Index
	}{
		{
			"compound non-unique",
			&mongo.IndexSpecification{Name: "created_at_-1_user_id_1", KeysDocument: keys},
			schema.Index{Keys: []schema.Key{
				{Field: "created_at", Direction: schema.Descending},
				{Field: "user_id", Direction: schema.Ascending},
			}},
		},
		{
			"unique",
			&mongo.IndexSpecification{Name: "created_at_-1_user_id_1", KeysDocument: keys, Unique: &unique},
			schema.Index{Unique: true, Keys: []schema.Key{
				{Field: "created_at", Direction: schema.Descending},
				{Field: "user_id", Direction: schema.Ascending},
			}},
		},
		{
			"sparse with ttl",
			&mongo.IndexSpecification{Name: "created_at_-1_user_id_1", KeysDocument: keys, Sparse: &sparse, ExpireAfterSeconds: &ttl},
			schema.Index{Sparse: true, ExpireAfterSeconds: 3600, Keys: []schema.Key{
				{Field: "created_at", Direction: schema.Descending},
				{Field: "user_id", Direction: schema.Ascending},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := indexFromSpec(tt.spec); !got.Equal(tt.want) {
				t.Errorf("indexFromSpec() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestKeysDocument(t *testing.T) {
	got := keysDocument(schema.Desc("created_at"))
	if len(got) != 1 || got[0].Key != "created_at" || got[0].Value != int32(-1) {
		t.Errorf("keysDocument() = %v, want [{created_at -1}]", got)
	}
}

// Package store implements the collection store: named collections of
// records serialized as JSON into an opaque blob. It is the sole persistence
// primitive for local data — there is no partial update and no transaction
// boundary, so every mutation above it is read whole, modify, write whole.
// Two concurrent writers to the same collection can therefore lose one
// update; serialization, if needed, belongs to the caller's deployment.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"questboard/internal/blob"
)

// Collection names owned by this store.
const (
	CollectionTasks   = "tasks"
	CollectionMembers = "members"
)

type Store struct {
	blob blob.Blob
}

func New(b blob.Blob) *Store {
	return &Store{blob: b}
}

// Get unmarshals a collection into out, which must be a pointer to a slice.
// A missing collection is not an error: out is left untouched, so callers
// that start from an empty slice read an empty collection.
func (s *Store) Get(ctx context.Context, collection string, out any) error {
	data, err := s.blob.Read(ctx, collection)
	if err != nil {
		return fmt.Errorf("get %s: %w", collection, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("get %s: decode: %w", collection, err)
	}
	return nil
}

// Save overwrites the whole collection with the given records.
func (s *Store) Save(ctx context.Context, collection string, records any) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("save %s: encode: %w", collection, err)
	}
	if err := s.blob.Write(ctx, collection, data); err != nil {
		return fmt.Errorf("save %s: %w", collection, err)
	}
	return nil
}

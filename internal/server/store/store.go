// Package store defines the document store the backend keeps its records
// in. Records are JSON documents addressed by collection and id; the
// concrete stores live in the memory, postgres and mongo subpackages.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/common"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

var ErrNotFound = common.ErrNotFound

// Filter selects documents whose top-level string fields equal the given
// values. An empty filter selects the whole collection.
type Filter map[string]string

// Store keeps JSON documents. Find returns documents in insertion order.
type Store interface {
	Insert(ctx context.Context, c api.Collection, id string, doc any) error
	Get(ctx context.Context, c api.Collection, id string) (json.RawMessage, error)
	Find(ctx context.Context, c api.Collection, f Filter) ([]json.RawMessage, error)
	Patch(ctx context.Context, c api.Collection, id string, patch models.Patch) error
	Delete(ctx context.Context, c api.Collection, id string) error
	Close() error
}

// GetAs loads one document and decodes it into T.
func GetAs[T any](ctx context.Context, s Store, c api.Collection, id string) (*T, error) {
	raw, err := s.Get(ctx, c, id)
	if err != nil {
		return nil, err
	}
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", c, id, err)
	}
	return v, nil
}

// FindAs runs Find and decodes every document into T.
func FindAs[T any](ctx context.Context, s Store, c api.Collection, f Filter) ([]T, error) {
	docs, err := s.Find(ctx, c, f)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, raw := range docs {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Merge overlays the top-level keys of patch on the JSON object raw.
func Merge(raw json.RawMessage, patch models.Patch) (json.RawMessage, error) {
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	for k, v := range patch {
		fields[k] = v
	}
	return json.Marshal(fields)
}

// Matches reports whether the JSON object raw satisfies f.
func Matches(raw json.RawMessage, f Filter) bool {
	if len(f) == 0 {
		return true
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	for k, want := range f {
		got, ok := fields[k].(string)
		if !ok || got != want {
			return false
		}
	}
	return true
}

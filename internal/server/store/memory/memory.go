// Package memory is a process-local store.Store used for development and
// tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store"
)

type collection struct {
	order []string
	docs  map[string]json.RawMessage
}

type Store struct {
	mu          sync.RWMutex
	collections map[api.Collection]*collection
}

func New() *Store {
	return &Store{collections: map[api.Collection]*collection{}}
}

func (s *Store) coll(c api.Collection) *collection {
	col, ok := s.collections[c]
	if !ok {
		col = &collection{docs: map[string]json.RawMessage{}}
		s.collections[c] = col
	}
	return col
}

func (s *Store) Insert(ctx context.Context, c api.Collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", c, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.coll(c)
	if _, exists := col.docs[id]; !exists {
		col.order = append(col.order, id)
	}
	col.docs[id] = raw
	return nil
}

func (s *Store) Get(ctx context.Context, c api.Collection, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.collections[c]
	if !ok {
		return nil, store.ErrNotFound
	}
	raw, ok := col.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return raw, nil
}

func (s *Store) Find(ctx context.Context, c api.Collection, f store.Filter) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []json.RawMessage{}
	col, ok := s.collections[c]
	if !ok {
		return result, nil
	}
	for _, id := range col.order {
		raw := col.docs[id]
		if store.Matches(raw, f) {
			result = append(result, raw)
		}
	}
	return result, nil
}

func (s *Store) Patch(ctx context.Context, c api.Collection, id string, patch models.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[c]
	if !ok {
		return store.ErrNotFound
	}
	raw, ok := col.docs[id]
	if !ok {
		return store.ErrNotFound
	}
	merged, err := store.Merge(raw, patch)
	if err != nil {
		return fmt.Errorf("patch %s/%s: %w", c, id, err)
	}
	col.docs[id] = merged
	return nil
}

func (s *Store) Delete(ctx context.Context, c api.Collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[c]
	if !ok {
		return store.ErrNotFound
	}
	if _, ok := col.docs[id]; !ok {
		return store.ErrNotFound
	}
	delete(col.docs, id)
	for i, v := range col.order {
		if v == id {
			col.order = append(col.order[:i], col.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

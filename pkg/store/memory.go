package store

import (
	"bytes"
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps records in a map.
type MemoryStore struct {
	mu   sync.RWMutex
	recs map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[string]Record)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recs[id]
	if !ok {
		return nil, notFound(id)
	}
	r.Data = bytes.Clone(r.Data)
	return &r, nil
}

func (s *MemoryStore) Put(_ context.Context, r *Record) error {
	if err := prepare(r, time.Now()); err != nil {
		return err
	}
	c := *r
	c.Data = bytes.Clone(r.Data)
	s.mu.Lock()
	s.recs[r.ID] = c
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[id]; !ok {
		return notFound(id)
	}
	delete(s.recs, id)
	return nil
}

func (s *MemoryStore) List(context.Context) ([]Record, error) {
	s.mu.RLock()
	out := make([]Record, 0, len(s.recs))
	for _, r := range s.recs {
		out = append(out, summary(r))
	}
	s.mu.RUnlock()
	slices.SortFunc(out, less)
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)

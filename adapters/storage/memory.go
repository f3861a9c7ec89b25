package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"hostforge/core/generator"
	"hostforge/internal/errors"
)

// MemoryStore is an in-memory storage backend (for testing)
type MemoryStore struct {
	snapshot *generator.Snapshot
	batches  map[string]*Batch
	mu       sync.RWMutex
}

// NewMemoryStore creates a memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		batches: make(map[string]*Batch),
	}
}

func (s *MemoryStore) LoadSnapshot(ctx context.Context) (*generator.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSnapshot(s.snapshot), nil
}

func (s *MemoryStore) SaveSnapshot(ctx context.Context, snap *generator.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = cloneSnapshot(snap)
	return nil
}

func (s *MemoryStore) SaveBatch(ctx context.Context, batch *Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	if batch.CreatedAt.IsZero() {
		batch.CreatedAt = time.Now().UTC()
	}

	s.batches[batch.ID] = batch
	return nil
}

func (s *MemoryStore) GetBatch(ctx context.Context, id string) (*Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batch, ok := s.batches[id]
	if !ok {
		return nil, errors.NotFound("batch", id)
	}
	return batch, nil
}

func (s *MemoryStore) ListBatches(ctx context.Context, filter *ListFilter) ([]*Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*Batch, 0, len(s.batches))
	for _, b := range s.batches {
		results = append(results, b)
	}
	return applyFilter(results, filter), nil
}

func (s *MemoryStore) DeleteBatch(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.batches[id]; !ok {
		return errors.NotFound("batch", id)
	}
	delete(s.batches, id)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Package storage provides snapshot and batch-history persistence.
// Supports multiple backends: file (JSON), sqlite, memory.
package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hostforge/core/catalog"
	"hostforge/core/generator"
)

// Backend is a storage backend type
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Store is the storage interface
type Store interface {
	generator.SnapshotStore

	// SaveBatch records a generated batch
	SaveBatch(ctx context.Context, batch *Batch) error

	// GetBatch retrieves a batch by ID
	GetBatch(ctx context.Context, id string) (*Batch, error)

	// ListBatches lists batches, newest first
	ListBatches(ctx context.Context, filter *ListFilter) ([]*Batch, error)

	// DeleteBatch removes a batch from history. Allocations are not affected.
	DeleteBatch(ctx context.Context, id string) error

	// Close closes the store
	Close() error
}

// Batch is one successful generate call
type Batch struct {
	// ID is unique identifier
	ID string `json:"id" yaml:"id"`

	// CreatedAt timestamp
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Request is what the caller asked for
	Request generator.Request `json:"request" yaml:"request"`

	// Hostnames are the identifiers allocated, in batch order
	Hostnames []string `json:"hostnames" yaml:"hostnames"`
}

// ListFilter filters batch listing
type ListFilter struct {
	Sector string
	Since  time.Time
	Limit  int
	Offset int
}

// Open opens the store for a backend
func Open(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path)
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

// applyFilter sorts newest first, then filters and pages
func applyFilter(batches []*Batch, filter *ListFilter) []*Batch {
	sort.SliceStable(batches, func(i, j int) bool {
		return batches[i].CreatedAt.After(batches[j].CreatedAt)
	})
	if filter == nil {
		return batches
	}

	sector := catalog.NormalizeName(filter.Sector)
	results := make([]*Batch, 0, len(batches))
	for _, b := range batches {
		if sector != "" && catalog.NormalizeName(b.Request.Sector) != sector {
			continue
		}
		if !filter.Since.IsZero() && b.CreatedAt.Before(filter.Since) {
			continue
		}
		results = append(results, b)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(results) {
			return []*Batch{}
		}
		results = results[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(results) {
		results = results[:filter.Limit]
	}
	return results
}

func cloneSnapshot(s *generator.Snapshot) *generator.Snapshot {
	if s == nil {
		return nil
	}
	out := &generator.Snapshot{
		Vendors:   cloneMap(s.Vendors),
		Types:     cloneMap(s.Types),
		Sectors:   cloneMap(s.Sectors),
		Locations: cloneMap(s.Locations),
	}
	if s.Allocations != nil {
		out.Allocations = make(map[string]map[string]string, len(s.Allocations))
		for sector, bucket := range s.Allocations {
			out.Allocations[sector] = cloneMap(bucket)
		}
	}
	return out
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

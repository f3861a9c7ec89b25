package generator

import (
	"context"
	"encoding/json"

	"hostforge/core/catalog"
)

// Snapshot is the serializable subset of generator state: catalog entries
// that are not builtin, plus the full allocation table.
type Snapshot struct {
	Vendors     map[string]string            `json:"vendors"`
	Types       map[string]string            `json:"types"`
	Sectors     map[string]string            `json:"sectors"`
	Locations   map[string]string            `json:"locations"`
	Allocations map[string]map[string]string `json:"allocations"`
}

// snapshotWire accepts both the current keys and the legacy Portuguese ones.
type snapshotWire struct {
	Vendors     map[string]string            `json:"vendors"`
	Types       map[string]string            `json:"types"`
	Sectors     map[string]string            `json:"sectors"`
	Locations   map[string]string            `json:"locations"`
	Allocations map[string]map[string]string `json:"allocations"`

	Fornecedores map[string]string            `json:"fornecedores"`
	Tipos        map[string]string            `json:"tipos"`
	Setores      map[string]string            `json:"setores"`
	Locais       map[string]string            `json:"locais"`
	Maquinas     map[string]map[string]string `json:"maquinas"`
}

// UnmarshalJSON decodes current or legacy snapshot keys. When both spellings
// are present, entries under the current key win.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var w snapshotWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = Snapshot{
		Vendors:     mergeMaps(w.Fornecedores, w.Vendors),
		Types:       mergeMaps(w.Tipos, w.Types),
		Sectors:     mergeMaps(w.Setores, w.Sectors),
		Locations:   mergeMaps(w.Locais, w.Locations),
		Allocations: w.Allocations,
	}
	if s.Allocations == nil {
		s.Allocations = w.Maquinas
	}
	return nil
}

func mergeMaps(legacy, current map[string]string) map[string]string {
	if legacy == nil {
		return current
	}
	out := make(map[string]string, len(legacy)+len(current))
	for k, v := range legacy {
		out[k] = v
	}
	for k, v := range current {
		out[k] = v
	}
	return out
}

// Additions returns the catalog additions recorded for kind
func (s *Snapshot) Additions(kind catalog.Kind) map[string]string {
	if s == nil {
		return nil
	}
	switch kind {
	case catalog.KindVendor:
		return s.Vendors
	case catalog.KindType:
		return s.Types
	case catalog.KindSector:
		return s.Sectors
	case catalog.KindLocation:
		return s.Locations
	}
	return nil
}

func (s *Snapshot) setAdditions(kind catalog.Kind, m map[string]string) {
	switch kind {
	case catalog.KindVendor:
		s.Vendors = m
	case catalog.KindType:
		s.Types = m
	case catalog.KindSector:
		s.Sectors = m
	case catalog.KindLocation:
		s.Locations = m
	}
}

// SnapshotStore persists snapshots. The generator never calls it; the
// composing caller loads one before construction and saves after mutations.
type SnapshotStore interface {
	// LoadSnapshot returns the saved snapshot, or nil when none exists
	LoadSnapshot(ctx context.Context) (*Snapshot, error)

	// SaveSnapshot replaces the saved snapshot
	SaveSnapshot(ctx context.Context, snap *Snapshot) error
}

// RestoreReport lists saved entries that could not be merged
type RestoreReport struct {
	// SkippedEntries are "kind/name" additions whose code is already taken
	SkippedEntries []string `json:"skipped_entries,omitempty"`

	// DroppedAllocations are "sector/key" entries with unusable number keys
	DroppedAllocations []string `json:"dropped_allocations,omitempty"`
}

// Clean reports whether everything was restored
func (r RestoreReport) Clean() bool {
	return len(r.SkippedEntries) == 0 && len(r.DroppedAllocations) == 0
}

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostforge/core/generator"
	"hostforge/internal/errors"
)

func openBackends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	fileStore, err := Open(BackendFile, filepath.Join(dir, "state.json"))
	require.NoError(t, err)
	sqliteStore, err := Open(BackendSQLite, filepath.Join(dir, "state.db"))
	require.NoError(t, err)

	stores := map[string]Store{
		"file":   fileStore,
		"sqlite": sqliteStore,
		"memory": NewMemoryStore(),
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func sampleSnapshot() *generator.Snapshot {
	return &generator.Snapshot{
		Vendors:   map[string]string{"acme": "AC"},
		Types:     map[string]string{"tablet": "T"},
		Sectors:   map[string]string{"juridico": "04"},
		Locations: map[string]string{},
		Allocations: map[string]map[string]string{
			"ti": {"1": "CNL-1L011-001", "3": "CNL-1L011-003"},
		},
	}
}

func TestLoadSnapshot_Empty(t *testing.T) {
	for name, store := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			snap, err := store.LoadSnapshot(context.Background())
			require.NoError(t, err)
			assert.Nil(t, snap)
		})
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.SaveSnapshot(ctx, sampleSnapshot()))

			snap, err := store.LoadSnapshot(ctx)
			require.NoError(t, err)
			require.NotNil(t, snap)

			assert.Equal(t, "AC", snap.Vendors["acme"])
			assert.Equal(t, "T", snap.Types["tablet"])
			assert.Equal(t, "04", snap.Sectors["juridico"])
			assert.Empty(t, snap.Locations)
			assert.Equal(t, "CNL-1L011-003", snap.Allocations["ti"]["3"])
			assert.Len(t, snap.Allocations["ti"], 2)
		})
	}
}

func TestSnapshot_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	for name, store := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.SaveSnapshot(ctx, sampleSnapshot()))

			next := sampleSnapshot()
			delete(next.Vendors, "acme")
			next.Allocations["ti"] = map[string]string{"1": "CNL-1L011-001"}
			require.NoError(t, store.SaveSnapshot(ctx, next))

			snap, err := store.LoadSnapshot(ctx)
			require.NoError(t, err)
			assert.Empty(t, snap.Vendors)
			assert.Len(t, snap.Allocations["ti"], 1)
		})
	}
}

func TestBatches(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, store := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			first := &Batch{
				CreatedAt: base,
				Request:   generator.Request{Vendor: "vendor1", Type: "laptop", Sector: "ti", Location: "fabrica", Count: 2},
				Hostnames: []string{"CNL-1L011-001", "CNL-1L011-002"},
			}
			second := &Batch{
				CreatedAt: base.Add(time.Minute),
				Request:   generator.Request{Vendor: "vendor2", Type: "desktop", Sector: "rh", Location: "escritorio", Count: 1},
				Hostnames: []string{"CNL-2D022-001"},
			}
			require.NoError(t, store.SaveBatch(ctx, first))
			require.NoError(t, store.SaveBatch(ctx, second))
			require.NotEmpty(t, first.ID)
			require.NotEqual(t, first.ID, second.ID)

			got, err := store.GetBatch(ctx, first.ID)
			require.NoError(t, err)
			assert.Equal(t, first.Hostnames, got.Hostnames)
			assert.Equal(t, "ti", got.Request.Sector)
			assert.Equal(t, 2, got.Request.Count)
			assert.True(t, got.CreatedAt.Equal(base))

			all, err := store.ListBatches(ctx, nil)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, second.ID, all[0].ID, "newest first")

			rh, err := store.ListBatches(ctx, &ListFilter{Sector: "rh"})
			require.NoError(t, err)
			require.Len(t, rh, 1)
			assert.Equal(t, second.ID, rh[0].ID)

			upper, err := store.ListBatches(ctx, &ListFilter{Sector: "TI"})
			require.NoError(t, err)
			require.Len(t, upper, 1, "sector filter ignores case")
			assert.Equal(t, first.ID, upper[0].ID)

			limited, err := store.ListBatches(ctx, &ListFilter{Limit: 1, Offset: 1})
			require.NoError(t, err)
			require.Len(t, limited, 1)
			assert.Equal(t, first.ID, limited[0].ID)

			require.NoError(t, store.DeleteBatch(ctx, first.ID))
			_, err = store.GetBatch(ctx, first.ID)
			assert.True(t, errors.IsType(err, errors.TypeNotFound))
			assert.True(t, errors.IsType(store.DeleteBatch(ctx, first.ID), errors.TypeNotFound))
		})
	}
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "state.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.SaveSnapshot(ctx, sampleSnapshot()))
	require.NoError(t, store.SaveBatch(ctx, &Batch{Hostnames: []string{"CNL-1L011-001"}}))

	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(dir, "nested", "state.history.json"))
	assert.NoFileExists(t, path+".tmp")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"allocations"`)
}

func TestFileStore_CorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.LoadSnapshot(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}

func TestFileStore_LegacyKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	legacy := `{"fornecedores":{"acme":"AC"},"maquinas":{"ti":{"1":"CNL-1L011-001"}}}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	snap, err := store.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AC", snap.Vendors["acme"])
	assert.Equal(t, "CNL-1L011-001", snap.Allocations["ti"]["1"])
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("postgres", "x")
	assert.Error(t, err)
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	snap := sampleSnapshot()
	require.NoError(t, store.SaveSnapshot(ctx, snap))
	snap.Allocations["ti"]["9"] = "CNL-1L011-009"

	loaded, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.NotContains(t, loaded.Allocations["ti"], "9")
}

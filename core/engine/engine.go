// Package engine is the service layer the CLI and HTTP server share.
// It owns one generator and one store, serializes access to them, and
// persists after every mutation.
package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"hostforge/adapters/storage"
	"hostforge/core/generator"
	"hostforge/internal/errors"
	"hostforge/internal/logging"
	"hostforge/internal/metrics"
)

// Config configures the engine
type Config struct {
	// Prefix is the identifier prefix, DefaultPrefix when empty
	Prefix string

	// MaxBatch caps one generate call, 0 for no cap
	MaxBatch int

	// Logger defaults to the global logger
	Logger *zap.Logger

	// Clock defaults to time.Now
	Clock func() time.Time
}

// Engine is the primary API for identifier allocation and hostname checks
type Engine struct {
	mu      sync.Mutex
	gen     *generator.Generator
	store   storage.Store
	logger  *zap.Logger
	restore generator.RestoreReport
}

// GenerateResult is one allocated batch
type GenerateResult struct {
	Batch       *storage.Batch         `json:"batch" yaml:"batch"`
	Identifiers []generator.Identifier `json:"identifiers" yaml:"identifiers"`
}

// New loads the saved snapshot from store and builds the generator from it.
// A snapshot that cannot be read or parsed is logged and replaced by the
// builtin defaults.
func New(ctx context.Context, store storage.Store, cfg Config) (*Engine, error) {
	if store == nil {
		return nil, errors.New(errors.TypeConfig, "engine requires a store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Named("engine")
	}

	var opts []generator.Option
	if cfg.Prefix != "" {
		opts = append(opts, generator.WithPrefix(cfg.Prefix))
	}
	if cfg.MaxBatch > 0 {
		opts = append(opts, generator.WithMaxBatch(cfg.MaxBatch))
	}
	if cfg.Clock != nil {
		opts = append(opts, generator.WithClock(cfg.Clock))
	}

	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		logger.Warn("saved state unreadable, starting from defaults", zap.Error(err))
		snap = nil
	}

	gen, report := generator.NewFromSnapshot(snap, opts...)
	if !report.Clean() {
		logger.Warn("saved state partially restored",
			zap.Strings("skipped_entries", report.SkippedEntries),
			zap.Strings("dropped_allocations", report.DroppedAllocations),
		)
	}

	return &Engine{
		gen:     gen,
		store:   store,
		logger:  logger,
		restore: report,
	}, nil
}

// RestoreReport returns what was skipped while loading the saved state
func (e *Engine) RestoreReport() generator.RestoreReport {
	return e.restore
}

// Prefix returns the identifier prefix in use
func (e *Engine) Prefix() string {
	return e.gen.Format().Prefix()
}

// Close closes the underlying store
func (e *Engine) Close() error {
	return e.store.Close()
}

// Generate allocates a batch, persists the new state and records the batch
// in history.
func (e *Engine) Generate(ctx context.Context, req generator.Request) (*GenerateResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids, err := e.gen.Generate(req)
	if err != nil {
		metrics.GenerateFailures.WithLabelValues(string(errors.TypeOf(err))).Inc()
		e.logger.Debug("generate rejected", zap.Error(err))
		return nil, err
	}

	sector := ids[0].Sector
	metrics.IdentifiersGenerated.WithLabelValues(sector).Add(float64(len(ids)))

	hostnames := make([]string, len(ids))
	for i, id := range ids {
		hostnames[i] = id.Hostname
	}

	if err := e.persist(ctx); err != nil {
		// the numbers stay taken in memory and are written by the next save
		e.logger.Error("allocated identifiers not saved",
			zap.String("sector", sector),
			zap.Strings("hostnames", hostnames),
		)
		if appErr, ok := errors.As(err); ok {
			return nil, appErr.WithContext("hostnames", hostnames)
		}
		return nil, err
	}

	// history records the resolved catalog names, not the caller's spelling
	batch := &storage.Batch{
		CreatedAt: ids[0].CreatedAt,
		Request: generator.Request{
			Vendor:   ids[0].Vendor,
			Type:     ids[0].Type,
			Sector:   sector,
			Location: ids[0].Location,
			Count:    req.Count,
		},
		Hostnames: hostnames,
	}
	if err := e.store.SaveBatch(ctx, batch); err != nil {
		// history is best effort once allocations are saved
		e.logger.Error("failed to record batch", zap.Error(err))
	}

	e.logger.Info("allocated identifiers",
		zap.String("batch", batch.ID),
		zap.String("sector", sector),
		zap.Int("count", len(ids)),
		zap.String("first", ids[0].Hostname),
	)
	return &GenerateResult{Batch: batch, Identifiers: ids}, nil
}

// NextAvailable returns the number the next generate call in sector starts from
func (e *Engine) NextAvailable(sector string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen.NextAvailable(sector)
}

// Preview returns the numbers a generate call of count would allocate
func (e *Engine) Preview(sector string, count int) []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen.Preview(sector, count)
}

// Decode splits an identifier into catalog names
func (e *Engine) Decode(hostname string) (*generator.Decoded, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen.Decode(hostname)
}

// ValidateFormat reports whether hostname has the identifier shape
func (e *Engine) ValidateFormat(hostname string) bool {
	return e.gen.ValidateFormat(hostname)
}

// IsAllocated reports whether hostname is recorded in the allocation table
func (e *Engine) IsAllocated(hostname string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen.IsAllocated(hostname)
}

// Encode renders an identifier without allocating it
func (e *Engine) Encode(req generator.EncodeRequest) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen.Encode(req)
}

// Sectors reports every non-empty sector bucket
func (e *Engine) Sectors() []generator.SectorReport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen.Sectors()
}

// Snapshot exports the state that is persisted
func (e *Engine) Snapshot() *generator.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen.Snapshot()
}

// persist saves the generator snapshot. Caller holds e.mu.
func (e *Engine) persist(ctx context.Context) error {
	if err := e.store.SaveSnapshot(ctx, e.gen.Snapshot()); err != nil {
		metrics.SnapshotSaves.WithLabelValues("error").Inc()
		e.logger.Error("failed to save state", zap.Error(err))
		if _, ok := errors.As(err); ok {
			return err
		}
		return errors.Storage("save state", err)
	}
	metrics.SnapshotSaves.WithLabelValues("ok").Inc()
	return nil
}

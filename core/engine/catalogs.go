package engine

import (
	"context"

	"go.uber.org/zap"

	"hostforge/adapters/hclcatalog"
	"hostforge/core/catalog"
	"hostforge/internal/metrics"
)

// Listing is one catalog with its entries in enumeration order
type Listing struct {
	Kind    catalog.Kind    `json:"kind" yaml:"kind"`
	Entries []catalog.Entry `json:"entries" yaml:"entries"`
}

// Catalogs lists all four catalogs in identifier order
func (e *Engine) Catalogs() []Listing {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := make([]Listing, 0, 4)
	for _, kind := range catalog.Kinds() {
		result = append(result, Listing{Kind: kind, Entries: e.gen.Entries(kind)})
	}
	return result
}

// Catalog lists one catalog
func (e *Engine) Catalog(kind catalog.Kind) Listing {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Listing{Kind: kind, Entries: e.gen.Entries(kind)}
}

// Stats returns per-catalog statistics
func (e *Engine) Stats() []catalog.CatalogStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen.Stats()
}

// Lint runs the catalog lint rules
func (e *Engine) Lint() []catalog.Finding {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen.Lint()
}

// AddEntry adds a custom catalog entry and persists
func (e *Engine) AddEntry(ctx context.Context, kind catalog.Kind, name, code string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.gen.Add(kind, name, code); err != nil {
		return err
	}
	metrics.CatalogMutations.WithLabelValues(string(kind), "add").Inc()
	e.logger.Info("catalog entry added",
		zap.String("kind", string(kind)),
		zap.String("name", catalog.NormalizeName(name)),
		zap.String("code", code),
	)
	return e.persist(ctx)
}

// RemoveEntry removes a catalog entry and persists if anything changed.
// Allocations made with the entry are kept.
func (e *Engine) RemoveEntry(ctx context.Context, kind catalog.Kind, name string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.gen.Remove(kind, name) {
		return false, nil
	}
	metrics.CatalogMutations.WithLabelValues(string(kind), "remove").Inc()
	e.logger.Info("catalog entry removed",
		zap.String("kind", string(kind)),
		zap.String("name", catalog.NormalizeName(name)),
	)
	return true, e.persist(ctx)
}

// Import applies parsed catalog entries in order and persists once
func (e *Engine) Import(ctx context.Context, entries []hclcatalog.Entry) ([]hclcatalog.Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	outcomes := hclcatalog.Apply(e.gen, entries)
	added, skipped := hclcatalog.Counts(outcomes)
	for _, o := range outcomes {
		if o.Added {
			metrics.CatalogMutations.WithLabelValues(string(o.Entry.Kind), "add").Inc()
		}
	}
	e.logger.Info("catalog import applied", zap.Int("added", added), zap.Int("skipped", skipped))

	if added == 0 {
		return outcomes, nil
	}
	return outcomes, e.persist(ctx)
}

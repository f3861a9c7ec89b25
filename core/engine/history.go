package engine

import (
	"context"

	"hostforge/adapters/storage"
)

// History lists recorded batches, newest first
func (e *Engine) History(ctx context.Context, filter *storage.ListFilter) ([]*storage.Batch, error) {
	return e.store.ListBatches(ctx, filter)
}

// Batch returns one recorded batch
func (e *Engine) Batch(ctx context.Context, id string) (*storage.Batch, error) {
	return e.store.GetBatch(ctx, id)
}

// DeleteBatch removes a batch from history. The identifiers stay allocated.
func (e *Engine) DeleteBatch(ctx context.Context, id string) error {
	return e.store.DeleteBatch(ctx, id)
}

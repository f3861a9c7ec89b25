package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"hostforge/core/generator"
	"hostforge/internal/errors"
)

// FileStore keeps the snapshot in one JSON file and batch history in a
// sibling "<name>.history.json".
type FileStore struct {
	snapshotPath string
	historyPath  string
	mu           sync.RWMutex
}

// NewFileStore creates a file store rooted at the snapshot path
func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return &FileStore{
		snapshotPath: path,
		historyPath:  base + ".history.json",
	}, nil
}

// Path returns the snapshot file path
func (s *FileStore) Path() string {
	return s.snapshotPath
}

func (s *FileStore) LoadSnapshot(ctx context.Context) (*generator.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.snapshotPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Storage("read snapshot", err)
	}

	var snap generator.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Parsing("decode snapshot "+s.snapshotPath, err)
	}
	return &snap, nil
}

func (s *FileStore) SaveSnapshot(ctx context.Context, snap *generator.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSONAtomic(s.snapshotPath, snap)
}

func (s *FileStore) SaveBatch(ctx context.Context, batch *Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	if batch.CreatedAt.IsZero() {
		batch.CreatedAt = time.Now().UTC()
	}

	history, err := s.readHistory()
	if err != nil {
		return err
	}
	history = append(history, batch)
	return writeJSONAtomic(s.historyPath, history)
}

func (s *FileStore) GetBatch(ctx context.Context, id string) (*Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, err := s.readHistory()
	if err != nil {
		return nil, err
	}
	for _, b := range history {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, errors.NotFound("batch", id)
}

func (s *FileStore) ListBatches(ctx context.Context, filter *ListFilter) ([]*Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, err := s.readHistory()
	if err != nil {
		return nil, err
	}
	return applyFilter(history, filter), nil
}

func (s *FileStore) DeleteBatch(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.readHistory()
	if err != nil {
		return err
	}
	for i, b := range history {
		if b.ID == id {
			history = append(history[:i], history[i+1:]...)
			return writeJSONAtomic(s.historyPath, history)
		}
	}
	return errors.NotFound("batch", id)
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) readHistory() ([]*Batch, error) {
	data, err := os.ReadFile(s.historyPath)
	if os.IsNotExist(err) {
		return []*Batch{}, nil
	}
	if err != nil {
		return nil, errors.Storage("read history", err)
	}
	var history []*Batch
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.Parsing("decode history "+s.historyPath, err)
	}
	return history, nil
}

// writeJSONAtomic writes v next to path and renames it into place
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Internal("marshal "+filepath.Base(path), err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return errors.Storage("write "+path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Storage("rename to "+path, err)
	}
	return nil
}

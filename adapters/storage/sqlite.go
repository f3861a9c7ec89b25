package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"hostforge/core/catalog"
	"hostforge/core/generator"
	"hostforge/internal/errors"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// SQLiteStore persists the snapshot and batch history in a SQLite database
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens and migrates a SQLite store
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{sqlDB: sqlDB}
	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) runMigrations() error {
	entries, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(entries)

	for _, name := range entries {
		content, err := migrationFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		up := extractUpMigration(string(content))
		if strings.TrimSpace(up) == "" {
			continue
		}
		if _, err := s.sqlDB.Exec(up); err != nil {
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
	}
	return nil
}

// extractUpMigration returns the statements after "-- +migrate Up",
// stopping at "-- +migrate Down" if present.
func extractUpMigration(content string) string {
	if idx := strings.Index(content, "-- +migrate Up"); idx >= 0 {
		content = content[idx+len("-- +migrate Up"):]
	}
	if idx := strings.Index(content, "-- +migrate Down"); idx >= 0 {
		content = content[:idx]
	}
	return content
}

// Close releases the underlying SQLite connection
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (*generator.Snapshot, error) {
	var savedAt int64
	err := s.sqlDB.QueryRowContext(ctx, `SELECT saved_at FROM snapshot_meta WHERE id = 1`).Scan(&savedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Storage("read snapshot meta", err)
	}

	snap := &generator.Snapshot{
		Vendors:     map[string]string{},
		Types:       map[string]string{},
		Sectors:     map[string]string{},
		Locations:   map[string]string{},
		Allocations: map[string]map[string]string{},
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT kind, name, code FROM catalog_additions`)
	if err != nil {
		return nil, errors.Storage("read catalog additions", err)
	}
	for rows.Next() {
		var kind, name, code string
		if err := rows.Scan(&kind, &name, &code); err != nil {
			_ = rows.Close()
			return nil, errors.Storage("scan catalog addition", err)
		}
		switch catalog.Kind(kind) {
		case catalog.KindVendor:
			snap.Vendors[name] = code
		case catalog.KindType:
			snap.Types[name] = code
		case catalog.KindSector:
			snap.Sectors[name] = code
		case catalog.KindLocation:
			snap.Locations[name] = code
		}
	}
	if err := rows.Close(); err != nil {
		return nil, errors.Storage("read catalog additions", err)
	}

	rows, err = s.sqlDB.QueryContext(ctx, `SELECT sector, number_key, hostname FROM allocations`)
	if err != nil {
		return nil, errors.Storage("read allocations", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sector, key, hostname string
		if err := rows.Scan(&sector, &key, &hostname); err != nil {
			return nil, errors.Storage("scan allocation", err)
		}
		bucket, ok := snap.Allocations[sector]
		if !ok {
			bucket = map[string]string{}
			snap.Allocations[sector] = bucket
		}
		bucket[key] = hostname
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("read allocations", err)
	}
	return snap, nil
}

func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap *generator.Snapshot) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Storage("begin snapshot tx", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_additions`); err != nil {
		return errors.Storage("clear catalog additions", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM allocations`); err != nil {
		return errors.Storage("clear allocations", err)
	}

	for _, kind := range catalog.Kinds() {
		for name, code := range snap.Additions(kind) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO catalog_additions (kind, name, code) VALUES (?, ?, ?)`,
				string(kind), name, code,
			); err != nil {
				return errors.Storage("insert catalog addition", err)
			}
		}
	}

	for sector, bucket := range snap.Allocations {
		for key, hostname := range bucket {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO allocations (sector, number_key, hostname) VALUES (?, ?, ?)`,
				sector, key, hostname,
			); err != nil {
				return errors.Storage("insert allocation", err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshot_meta (id, saved_at) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET saved_at = excluded.saved_at`,
		time.Now().UTC().UnixMilli(),
	); err != nil {
		return errors.Storage("write snapshot meta", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.Storage("commit snapshot", err)
	}
	return nil
}

func (s *SQLiteStore) SaveBatch(ctx context.Context, batch *Batch) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	if batch.CreatedAt.IsZero() {
		batch.CreatedAt = time.Now().UTC()
	}

	hostnames, err := json.Marshal(batch.Hostnames)
	if err != nil {
		return errors.Internal("marshal hostnames", err)
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO batches (id, created_at, vendor, type, sector, location, count, hostnames_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		batch.ID,
		batch.CreatedAt.UnixNano(),
		batch.Request.Vendor,
		batch.Request.Type,
		batch.Request.Sector,
		batch.Request.Location,
		batch.Request.Count,
		string(hostnames),
	)
	if err != nil {
		return errors.Storage("insert batch", err)
	}
	return nil
}

func (s *SQLiteStore) GetBatch(ctx context.Context, id string) (*Batch, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, created_at, vendor, type, sector, location, count, hostnames_json
		 FROM batches WHERE id = ?`, id)

	batch, err := scanBatch(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("batch", id)
	}
	if err != nil {
		return nil, errors.Storage("read batch", err)
	}
	return batch, nil
}

func (s *SQLiteStore) ListBatches(ctx context.Context, filter *ListFilter) ([]*Batch, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, created_at, vendor, type, sector, location, count, hostnames_json
		 FROM batches ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Storage("list batches", err)
	}
	defer rows.Close()

	var batches []*Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, errors.Storage("scan batch", err)
		}
		batches = append(batches, batch)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("list batches", err)
	}
	return applyFilter(batches, filter), nil
}

func (s *SQLiteStore) DeleteBatch(ctx context.Context, id string) error {
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM batches WHERE id = ?`, id)
	if err != nil {
		return errors.Storage("delete batch", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Storage("delete batch", err)
	}
	if n == 0 {
		return errors.NotFound("batch", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (*Batch, error) {
	var (
		batch     Batch
		createdAt int64
		hostnames string
	)
	if err := row.Scan(
		&batch.ID,
		&createdAt,
		&batch.Request.Vendor,
		&batch.Request.Type,
		&batch.Request.Sector,
		&batch.Request.Location,
		&batch.Request.Count,
		&hostnames,
	); err != nil {
		return nil, err
	}
	batch.CreatedAt = time.Unix(0, createdAt).UTC()
	if err := json.Unmarshal([]byte(hostnames), &batch.Hostnames); err != nil {
		return nil, err
	}
	return &batch, nil
}

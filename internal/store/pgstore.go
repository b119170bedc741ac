package store

import (
	"context"
	"fmt"

	"ngonexus/internal/infra"
)

// PGStore keeps blobs in a single kv_blobs table. It is the backend used when
// DATABASE_URL is configured, so several processes can share one snapshot.
type PGStore struct {
	sql infra.SQLExecutor
}

// NewPGStore creates a Postgres-backed blob store over the given executor.
func NewPGStore(sql infra.SQLExecutor) *PGStore {
	return &PGStore{sql: sql}
}

// Get returns the blob for key, or absent when no row exists.
func (s *PGStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	row := s.sql.QueryRow(ctx, qSelectBlob, key)
	var blob []byte
	if err := row.Scan(&blob); err != nil {
		if infra.IsNoRows(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("store: select %s: %w", key, err)
	}
	return blob, true, nil
}

// Set upserts the blob under key.
func (s *PGStore) Set(ctx context.Context, key string, blob []byte) error {
	if _, err := s.sql.Exec(ctx, qUpsertBlob, key, blob); err != nil {
		return fmt.Errorf("store: upsert %s: %w", key, err)
	}
	return nil
}

// Remove deletes the row for key if present.
func (s *PGStore) Remove(ctx context.Context, key string) error {
	if _, err := s.sql.Exec(ctx, qDeleteBlob, key); err != nil {
		return fmt.Errorf("store: delete %s: %w", key, err)
	}
	return nil
}

var _ Store = (*PGStore)(nil)

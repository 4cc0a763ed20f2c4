package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/meetsync/internal/models"
	"github.com/iudanet/meetsync/internal/server/storage"
)

type tombstoneStore struct {
	q querier
}

var _ storage.TombstoneStore = (*tombstoneStore)(nil)

func (s *tombstoneStore) Get(ctx context.Context, table models.Table, id string) (time.Time, error) {
	query := `
		SELECT deleted_at
		FROM tombstones
		WHERE table_name = ? AND record_id = ?
	`

	var deletedAt int64
	if err := s.q.QueryRowContext(ctx, query, string(table), id).Scan(&deletedAt); err != nil {
		return time.Time{}, notFound(err)
	}
	return fromUnix(deletedAt), nil
}

func (s *tombstoneStore) Put(ctx context.Context, table models.Table, id string, deletedAt time.Time) error {
	query := `
		INSERT INTO tombstones (table_name, record_id, deleted_at)
		VALUES (?, ?, ?)
		ON CONFLICT (table_name, record_id)
		DO UPDATE SET deleted_at = MAX(deleted_at, excluded.deleted_at)
	`

	if _, err := s.q.ExecContext(ctx, query, string(table), id, toUnix(deletedAt)); err != nil {
		return fmt.Errorf("failed to put tombstone: %w", err)
	}
	return nil
}

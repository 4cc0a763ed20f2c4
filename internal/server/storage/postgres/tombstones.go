package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/meetsync/internal/models"
	"github.com/iudanet/meetsync/internal/server/storage"
)

type tombstoneStore struct {
	tx pgx.Tx
}

var _ storage.TombstoneStore = (*tombstoneStore)(nil)

func (s *tombstoneStore) Get(ctx context.Context, table models.Table, id string) (time.Time, error) {
	query := `
		SELECT deleted_at
		FROM tombstones
		WHERE table_name = $1 AND record_id = $2
	`

	var deletedAt time.Time
	if err := s.tx.QueryRow(ctx, query, string(table), id).Scan(&deletedAt); err != nil {
		return time.Time{}, notFound(err)
	}
	return deletedAt.UTC(), nil
}

func (s *tombstoneStore) Put(ctx context.Context, table models.Table, id string, deletedAt time.Time) error {
	query := `
		INSERT INTO tombstones (table_name, record_id, deleted_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (table_name, record_id)
		DO UPDATE SET deleted_at = GREATEST(tombstones.deleted_at, EXCLUDED.deleted_at)
	`

	if _, err := s.tx.Exec(ctx, query, string(table), id, deletedAt); err != nil {
		return fmt.Errorf("failed to put tombstone: %w", err)
	}
	return nil
}

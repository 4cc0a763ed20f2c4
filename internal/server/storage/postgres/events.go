package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/meetsync/internal/models"
	"github.com/iudanet/meetsync/internal/server/storage"
)

type eventStore struct {
	tx pgx.Tx
}

var _ storage.EventStore = (*eventStore)(nil)

func (s *eventStore) Get(ctx context.Context, id string) (*models.Event, error) {
	query := `
		SELECT id, owner_id, title, description, location, status, final_slot_id,
		       created_at, updated_at
		FROM events
		WHERE id = $1
	`

	event := &models.Event{}
	var status string

	err := s.tx.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.OwnerID,
		&event.Title,
		&event.Description,
		&event.Location,
		&status,
		&event.FinalSlotID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	event.Status = models.EventStatus(status)
	event.CreatedAt = event.CreatedAt.UTC()
	event.UpdatedAt = event.UpdatedAt.UTC()

	rows, err := s.tx.Query(ctx, `
		SELECT id, starts_at, ends_at
		FROM event_slots
		WHERE event_id = $1
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query slots: %w", err)
	}
	slots, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.TimeSlot, error) {
		var slot models.TimeSlot
		err := row.Scan(&slot.ID, &slot.StartsAt, &slot.EndsAt)
		slot.StartsAt = slot.StartsAt.UTC()
		slot.EndsAt = slot.EndsAt.UTC()
		return slot, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan slots: %w", err)
	}
	if len(slots) > 0 {
		event.Slots = slots
	}

	return event, nil
}

func (s *eventStore) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (
			id, owner_id, title, description, location, status, final_slot_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.tx.Exec(ctx, query,
		event.ID,
		event.OwnerID,
		event.Title,
		event.Description,
		event.Location,
		string(event.Status),
		event.FinalSlotID,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", mapError(err))
	}

	return s.saveSlots(ctx, event)
}

func (s *eventStore) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET owner_id = $1, title = $2, description = $3, location = $4, status = $5,
		    final_slot_id = $6, updated_at = $7
		WHERE id = $8
	`

	tag, err := s.tx.Exec(ctx, query,
		event.OwnerID,
		event.Title,
		event.Description,
		event.Location,
		string(event.Status),
		event.FinalSlotID,
		event.UpdatedAt,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", mapError(err))
	}
	if err := checkAffected(tag); err != nil {
		return err
	}

	keep := make([]string, 0, len(event.Slots))
	for _, slot := range event.Slots {
		keep = append(keep, slot.ID)
	}
	if _, err := s.tx.Exec(ctx,
		`DELETE FROM event_slots WHERE event_id = $1 AND NOT (id = ANY($2))`, event.ID, keep); err != nil {
		return fmt.Errorf("failed to delete slots: %w", err)
	}

	return s.saveSlots(ctx, event)
}

func (s *eventStore) Delete(ctx context.Context, id string) error {
	tag, err := s.tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return checkAffected(tag)
}

func (s *eventStore) saveSlots(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO event_slots (event_id, id, position, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, id) DO UPDATE
		SET position = EXCLUDED.position, starts_at = EXCLUDED.starts_at, ends_at = EXCLUDED.ends_at
	`

	batch := &pgx.Batch{}
	for i, slot := range event.Slots {
		batch.Queue(query, event.ID, slot.ID, i, slot.StartsAt, slot.EndsAt)
	}
	if batch.Len() == 0 {
		return nil
	}

	if err := s.tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save slots: %w", mapError(err))
	}
	return nil
}

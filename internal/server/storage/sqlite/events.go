package sqlite

import (
	"context"
	"fmt"

	"github.com/iudanet/meetsync/internal/models"
	"github.com/iudanet/meetsync/internal/server/storage"
)

type eventStore struct {
	q querier
}

var _ storage.EventStore = (*eventStore)(nil)

// Get retrieves event with its slots
func (s *eventStore) Get(ctx context.Context, id string) (*models.Event, error) {
	query := `
		SELECT id, owner_id, title, description, location, status, final_slot_id,
		       created_at, updated_at
		FROM events
		WHERE id = ?
	`

	event := &models.Event{}
	var createdAt, updatedAt int64
	var status string

	err := s.q.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.OwnerID,
		&event.Title,
		&event.Description,
		&event.Location,
		&status,
		&event.FinalSlotID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	event.Status = models.EventStatus(status)
	event.CreatedAt = fromUnix(createdAt)
	event.UpdatedAt = fromUnix(updatedAt)

	slots, err := s.slots(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Slots = slots

	return event, nil
}

// Create inserts event and its slots
func (s *eventStore) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (
			id, owner_id, title, description, location, status, final_slot_id,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.q.ExecContext(ctx, query,
		event.ID,
		event.OwnerID,
		event.Title,
		event.Description,
		event.Location,
		string(event.Status),
		event.FinalSlotID,
		toUnix(event.CreatedAt),
		toUnix(event.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", mapError(err))
	}

	return s.saveSlots(ctx, event)
}

// Update replaces event fields. Slots missing in the new version are removed
// together with votes for them.
func (s *eventStore) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET owner_id = ?, title = ?, description = ?, location = ?, status = ?,
		    final_slot_id = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := s.q.ExecContext(ctx, query,
		event.OwnerID,
		event.Title,
		event.Description,
		event.Location,
		string(event.Status),
		event.FinalSlotID,
		toUnix(event.UpdatedAt),
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", mapError(err))
	}
	if err := checkAffected(res); err != nil {
		return err
	}

	existing, err := s.slots(ctx, event.ID)
	if err != nil {
		return err
	}
	for _, slot := range existing {
		if event.HasSlot(slot.ID) {
			continue
		}
		if _, err := s.q.ExecContext(ctx,
			`DELETE FROM event_slots WHERE event_id = ? AND id = ?`, event.ID, slot.ID); err != nil {
			return fmt.Errorf("failed to delete slot: %w", err)
		}
	}

	return s.saveSlots(ctx, event)
}

// Delete removes event. Slots, participants and votes are removed by cascade.
func (s *eventStore) Delete(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return checkAffected(res)
}

func (s *eventStore) saveSlots(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO event_slots (event_id, id, position, starts_at, ends_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (event_id, id) DO UPDATE
		SET position = excluded.position, starts_at = excluded.starts_at, ends_at = excluded.ends_at
	`

	for i, slot := range event.Slots {
		if _, err := s.q.ExecContext(ctx, query,
			event.ID, slot.ID, i, toUnix(slot.StartsAt), toUnix(slot.EndsAt)); err != nil {
			return fmt.Errorf("failed to save slot: %w", mapError(err))
		}
	}
	return nil
}

func (s *eventStore) slots(ctx context.Context, eventID string) ([]models.TimeSlot, error) {
	query := `
		SELECT id, starts_at, ends_at
		FROM event_slots
		WHERE event_id = ?
		ORDER BY position ASC
	`

	rows, err := s.q.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query slots: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var slots []models.TimeSlot
	for rows.Next() {
		var slot models.TimeSlot
		var startsAt, endsAt int64
		if err := rows.Scan(&slot.ID, &startsAt, &endsAt); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		slot.StartsAt = fromUnix(startsAt)
		slot.EndsAt = fromUnix(endsAt)
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate slots: %w", err)
	}

	return slots, nil
}

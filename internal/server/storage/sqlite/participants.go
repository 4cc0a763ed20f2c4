package sqlite

import (
	"context"
	"fmt"

	"github.com/iudanet/meetsync/internal/models"
	"github.com/iudanet/meetsync/internal/server/storage"
)

type participantStore struct {
	q querier
}

var _ storage.ParticipantStore = (*participantStore)(nil)

func (s *participantStore) Get(ctx context.Context, id string) (*models.Participant, error) {
	query := `
		SELECT id, event_id, user_id, name, status, created_at, updated_at
		FROM participants
		WHERE id = ?
	`

	p := &models.Participant{}
	var createdAt, updatedAt int64
	var status string

	err := s.q.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.EventID,
		&p.UserID,
		&p.Name,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	p.Status = models.ParticipantStatus(status)
	p.CreatedAt = fromUnix(createdAt)
	p.UpdatedAt = fromUnix(updatedAt)

	return p, nil
}

func (s *participantStore) Create(ctx context.Context, p *models.Participant) error {
	query := `
		INSERT INTO participants (id, event_id, user_id, name, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.q.ExecContext(ctx, query,
		p.ID,
		p.EventID,
		p.UserID,
		p.Name,
		string(p.Status),
		toUnix(p.CreatedAt),
		toUnix(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", mapError(err))
	}
	return nil
}

func (s *participantStore) Update(ctx context.Context, p *models.Participant) error {
	query := `
		UPDATE participants
		SET event_id = ?, user_id = ?, name = ?, status = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := s.q.ExecContext(ctx, query,
		p.EventID,
		p.UserID,
		p.Name,
		string(p.Status),
		toUnix(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update participant: %w", mapError(err))
	}
	return checkAffected(res)
}

// Delete removes participant, votes are removed by cascade
func (s *participantStore) Delete(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM participants WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	return checkAffected(res)
}

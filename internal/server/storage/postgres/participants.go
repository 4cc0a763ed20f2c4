package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/meetsync/internal/models"
	"github.com/iudanet/meetsync/internal/server/storage"
)

type participantStore struct {
	tx pgx.Tx
}

var _ storage.ParticipantStore = (*participantStore)(nil)

func (s *participantStore) Get(ctx context.Context, id string) (*models.Participant, error) {
	query := `
		SELECT id, event_id, user_id, name, status, created_at, updated_at
		FROM participants
		WHERE id = $1
	`

	p := &models.Participant{}
	var status string

	err := s.tx.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.EventID,
		&p.UserID,
		&p.Name,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	p.Status = models.ParticipantStatus(status)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()

	return p, nil
}

func (s *participantStore) Create(ctx context.Context, p *models.Participant) error {
	query := `
		INSERT INTO participants (id, event_id, user_id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.tx.Exec(ctx, query,
		p.ID, p.EventID, p.UserID, p.Name, string(p.Status), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", mapError(err))
	}
	return nil
}

func (s *participantStore) Update(ctx context.Context, p *models.Participant) error {
	query := `
		UPDATE participants
		SET event_id = $1, user_id = $2, name = $3, status = $4, updated_at = $5
		WHERE id = $6
	`

	tag, err := s.tx.Exec(ctx, query,
		p.EventID, p.UserID, p.Name, string(p.Status), p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update participant: %w", mapError(err))
	}
	return checkAffected(tag)
}

func (s *participantStore) Delete(ctx context.Context, id string) error {
	tag, err := s.tx.Exec(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	return checkAffected(tag)
}

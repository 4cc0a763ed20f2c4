package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/meetsync/internal/models"
	"github.com/iudanet/meetsync/internal/server/storage"
)

type voteStore struct {
	tx pgx.Tx
}

var _ storage.VoteStore = (*voteStore)(nil)

func (s *voteStore) Get(ctx context.Context, id string) (*models.Vote, error) {
	query := `
		SELECT id, event_id, participant_id, slot_id, choice, created_at, updated_at
		FROM votes
		WHERE id = $1
	`

	v := &models.Vote{}
	var choice string

	err := s.tx.QueryRow(ctx, query, id).Scan(
		&v.ID,
		&v.EventID,
		&v.ParticipantID,
		&v.SlotID,
		&choice,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	v.Choice = models.VoteChoice(choice)
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()

	return v, nil
}

func (s *voteStore) Create(ctx context.Context, v *models.Vote) error {
	query := `
		INSERT INTO votes (id, event_id, participant_id, slot_id, choice, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.tx.Exec(ctx, query,
		v.ID, v.EventID, v.ParticipantID, v.SlotID, string(v.Choice), v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", mapError(err))
	}
	return nil
}

func (s *voteStore) Update(ctx context.Context, v *models.Vote) error {
	query := `
		UPDATE votes
		SET event_id = $1, participant_id = $2, slot_id = $3, choice = $4, updated_at = $5
		WHERE id = $6
	`

	tag, err := s.tx.Exec(ctx, query,
		v.EventID, v.ParticipantID, v.SlotID, string(v.Choice), v.UpdatedAt, v.ID)
	if err != nil {
		return fmt.Errorf("failed to update vote: %w", mapError(err))
	}
	return checkAffected(tag)
}

func (s *voteStore) Delete(ctx context.Context, id string) error {
	tag, err := s.tx.Exec(ctx, `DELETE FROM votes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return checkAffected(tag)
}

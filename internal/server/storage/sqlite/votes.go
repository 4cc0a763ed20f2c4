package sqlite

import (
	"context"
	"fmt"

	"github.com/iudanet/meetsync/internal/models"
	"github.com/iudanet/meetsync/internal/server/storage"
)

type voteStore struct {
	q querier
}

var _ storage.VoteStore = (*voteStore)(nil)

func (s *voteStore) Get(ctx context.Context, id string) (*models.Vote, error) {
	query := `
		SELECT id, event_id, participant_id, slot_id, choice, created_at, updated_at
		FROM votes
		WHERE id = ?
	`

	v := &models.Vote{}
	var createdAt, updatedAt int64
	var choice string

	err := s.q.QueryRowContext(ctx, query, id).Scan(
		&v.ID,
		&v.EventID,
		&v.ParticipantID,
		&v.SlotID,
		&choice,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	v.Choice = models.VoteChoice(choice)
	v.CreatedAt = fromUnix(createdAt)
	v.UpdatedAt = fromUnix(updatedAt)

	return v, nil
}

func (s *voteStore) Create(ctx context.Context, v *models.Vote) error {
	query := `
		INSERT INTO votes (id, event_id, participant_id, slot_id, choice, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.q.ExecContext(ctx, query,
		v.ID,
		v.EventID,
		v.ParticipantID,
		v.SlotID,
		string(v.Choice),
		toUnix(v.CreatedAt),
		toUnix(v.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", mapError(err))
	}
	return nil
}

func (s *voteStore) Update(ctx context.Context, v *models.Vote) error {
	query := `
		UPDATE votes
		SET event_id = ?, participant_id = ?, slot_id = ?, choice = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := s.q.ExecContext(ctx, query,
		v.EventID,
		v.ParticipantID,
		v.SlotID,
		string(v.Choice),
		toUnix(v.UpdatedAt),
		v.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vote: %w", mapError(err))
	}
	return checkAffected(res)
}

func (s *voteStore) Delete(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM votes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return checkAffected(res)
}

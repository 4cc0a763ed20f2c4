package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/meetsync/internal/models"
	"github.com/iudanet/meetsync/internal/server/storage"
)

var testTime = time.Date(2026, 5, 1, 12, 0, 0, 123456000, time.UTC)

// setupTestStorage подключается к БД из MEETSYNC_TEST_DATABASE_URL и очищает таблицы
func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	url := os.Getenv("MEETSYNC_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("MEETSYNC_TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	s, err := New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	_, err = s.pool.Exec(ctx, `TRUNCATE events, event_slots, participants, votes, tombstones CASCADE`)
	require.NoError(t, err)

	return s
}

func testEvent(id string) *models.Event {
	return &models.Event{
		ID:        id,
		OwnerID:   "u1",
		Title:     "Board games",
		Status:    models.EventStatusPolling,
		CreatedAt: testTime,
		UpdatedAt: testTime,
		Slots: []models.TimeSlot{
			{ID: "s2", StartsAt: testTime.Add(48 * time.Hour), EndsAt: testTime.Add(50 * time.Hour)},
			{ID: "s1", StartsAt: testTime.Add(24 * time.Hour), EndsAt: testTime.Add(26 * time.Hour)},
		},
	}
}

func seed(t *testing.T, s *Storage) {
	t.Helper()

	err := s.InTx(context.Background(), func(ctx context.Context, repos storage.Repositories) error {
		if err := repos.Events.Create(ctx, testEvent("E1")); err != nil {
			return err
		}
		if err := repos.Participants.Create(ctx, &models.Participant{
			ID: "P1", EventID: "E1", Name: "Alice", CreatedAt: testTime, UpdatedAt: testTime,
		}); err != nil {
			return err
		}
		return repos.Votes.Create(ctx, &models.Vote{
			ID: "V1", EventID: "E1", ParticipantID: "P1", SlotID: "s1", Choice: models.VoteYes,
			CreatedAt: testTime, UpdatedAt: testTime,
		})
	})
	require.NoError(t, err)
}

func TestStorage_RoundTrip(t *testing.T) {
	s := setupTestStorage(t)
	seed(t, s)

	err := s.InTx(context.Background(), func(ctx context.Context, repos storage.Repositories) error {
		got, err := repos.Events.Get(ctx, "E1")
		require.NoError(t, err)
		assert.True(t, testEvent("E1").ContentEqual(got))
		assert.True(t, got.UpdatedAt.Equal(testTime), "Microsecond precision must survive")

		vote, err := repos.Votes.Get(ctx, "V1")
		require.NoError(t, err)
		assert.Equal(t, models.VoteYes, vote.Choice)
		return nil
	})
	require.NoError(t, err)
}

func TestStorage_ConstraintErrors(t *testing.T) {
	s := setupTestStorage(t)
	seed(t, s)
	ctx := context.Background()

	err := s.InTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		return repos.Events.Create(ctx, testEvent("E1"))
	})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	err = s.InTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		return repos.Participants.Create(ctx, &models.Participant{
			ID: "P2", EventID: "missing", Name: "Bob", CreatedAt: testTime, UpdatedAt: testTime,
		})
	})
	assert.ErrorIs(t, err, storage.ErrReferenceNotFound)

	err = s.InTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		return repos.Votes.Delete(ctx, "missing")
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_UpdateSlotsAndCascade(t *testing.T) {
	s := setupTestStorage(t)
	seed(t, s)
	ctx := context.Background()

	updated := testEvent("E1")
	updated.Slots = updated.Slots[:1]
	updated.UpdatedAt = testTime.Add(time.Hour)

	err := s.InTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		require.NoError(t, repos.Events.Update(ctx, updated))

		_, err := repos.Votes.Get(ctx, "V1")
		assert.ErrorIs(t, err, storage.ErrNotFound, "Vote for removed slot must be removed")

		require.NoError(t, repos.Events.Delete(ctx, "E1"))
		_, err = repos.Participants.Get(ctx, "P1")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestStorage_Tombstones(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	err := s.InTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		_, err := repos.Tombstones.Get(ctx, models.TableEvents, "E1")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		require.NoError(t, repos.Tombstones.Put(ctx, models.TableEvents, "E1", testTime))
		require.NoError(t, repos.Tombstones.Put(ctx, models.TableEvents, "E1", testTime.Add(-time.Hour)))

		deletedAt, err := repos.Tombstones.Get(ctx, models.TableEvents, "E1")
		require.NoError(t, err)
		assert.True(t, testTime.Equal(deletedAt))
		return nil
	})
	require.NoError(t, err)
}

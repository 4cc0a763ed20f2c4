package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/meetsync/internal/models"
	"github.com/iudanet/meetsync/internal/server/storage"
)

// newAppliers возвращает appliers всех синхронизируемых таблиц
func newAppliers() map[models.Table]applier {
	return map[models.Table]applier{
		models.TableEvents:       eventApplier(),
		models.TableParticipants: participantApplier(),
		models.TableVotes:        voteApplier(),
	}
}

// eventApplier: событие изменяет и удаляет только владелец
func eventApplier() *entityApplier[*models.Event] {
	return &entityApplier[*models.Event]{
		table: models.TableEvents,
		store: func(repos storage.Repositories) storage.Store[*models.Event] { return repos.Events },
		times: func(e *models.Event) (time.Time, time.Time) { return e.CreatedAt, e.UpdatedAt },
		stamp: func(e *models.Event, createdAt, updatedAt time.Time) {
			e.CreatedAt, e.UpdatedAt = createdAt, updatedAt
		},
		equal: func(a, b *models.Event) bool { return a.ContentEqual(b) },
		checkCreate: func(_ context.Context, _ storage.Repositories, userID string, e *models.Event) error {
			if e.OwnerID == "" {
				e.OwnerID = userID
			}
			if e.OwnerID != userID {
				return fmt.Errorf("%w: event must be owned by its author", ErrForbidden)
			}
			return nil
		},
		checkUpdate: func(_ context.Context, _ storage.Repositories, userID string, e, current *models.Event) error {
			if current.OwnerID != userID {
				return fmt.Errorf("%w: only owner can update event", ErrForbidden)
			}
			if e.OwnerID == "" {
				e.OwnerID = current.OwnerID
			}
			if e.OwnerID != current.OwnerID {
				return fmt.Errorf("%w: event owner cannot be changed", ErrForbidden)
			}
			return nil
		},
		checkDelete: func(_ context.Context, _ storage.Repositories, userID string, current *models.Event) error {
			if current.OwnerID != userID {
				return fmt.Errorf("%w: only owner can delete event", ErrForbidden)
			}
			return nil
		},
	}
}

// participantApplier: участник должен ссылаться на существующее событие
func participantApplier() *entityApplier[*models.Participant] {
	check := func(ctx context.Context, repos storage.Repositories, p *models.Participant) error {
		_, err := eventOf(ctx, repos, p.EventID)
		return err
	}

	return &entityApplier[*models.Participant]{
		table: models.TableParticipants,
		store: func(repos storage.Repositories) storage.Store[*models.Participant] { return repos.Participants },
		times: func(p *models.Participant) (time.Time, time.Time) { return p.CreatedAt, p.UpdatedAt },
		stamp: func(p *models.Participant, createdAt, updatedAt time.Time) {
			p.CreatedAt, p.UpdatedAt = createdAt, updatedAt
		},
		equal: func(a, b *models.Participant) bool { return a.ContentEqual(b) },
		parents: func(p *models.Participant) []recordRef {
			return []recordRef{{table: models.TableEvents, id: p.EventID}}
		},
		checkCreate: func(ctx context.Context, repos storage.Repositories, _ string, p *models.Participant) error {
			return check(ctx, repos, p)
		},
		checkUpdate: func(ctx context.Context, repos storage.Repositories, _ string, p, _ *models.Participant) error {
			return check(ctx, repos, p)
		},
	}
}

// voteApplier: голос ссылается на слот события и участника того же события
func voteApplier() *entityApplier[*models.Vote] {
	check := func(ctx context.Context, repos storage.Repositories, v *models.Vote) error {
		event, err := eventOf(ctx, repos, v.EventID)
		if err != nil {
			return err
		}
		if !event.HasSlot(v.SlotID) {
			return fmt.Errorf("%w: slot %s of event %s", storage.ErrReferenceNotFound, v.SlotID, v.EventID)
		}

		participant, err := repos.Participants.Get(ctx, v.ParticipantID)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: participant %s", storage.ErrReferenceNotFound, v.ParticipantID)
		}
		if err != nil {
			return fmt.Errorf("failed to get participant: %w", err)
		}
		if participant.EventID != v.EventID {
			return fmt.Errorf("%w: participant %s does not belong to event %s",
				ErrInvalidChange, v.ParticipantID, v.EventID)
		}
		return nil
	}

	return &entityApplier[*models.Vote]{
		table: models.TableVotes,
		store: func(repos storage.Repositories) storage.Store[*models.Vote] { return repos.Votes },
		times: func(v *models.Vote) (time.Time, time.Time) { return v.CreatedAt, v.UpdatedAt },
		stamp: func(v *models.Vote, createdAt, updatedAt time.Time) {
			v.CreatedAt, v.UpdatedAt = createdAt, updatedAt
		},
		equal: func(a, b *models.Vote) bool { return a.ContentEqual(b) },
		parents: func(v *models.Vote) []recordRef {
			return []recordRef{
				{table: models.TableEvents, id: v.EventID},
				{table: models.TableParticipants, id: v.ParticipantID},
			}
		},
		checkCreate: func(ctx context.Context, repos storage.Repositories, _ string, v *models.Vote) error {
			return check(ctx, repos, v)
		},
		checkUpdate: func(ctx context.Context, repos storage.Repositories, _ string, v, _ *models.Vote) error {
			return check(ctx, repos, v)
		},
	}
}

func eventOf(ctx context.Context, repos storage.Repositories, eventID string) (*models.Event, error) {
	event, err := repos.Events.Get(ctx, eventID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: event %s", storage.ErrReferenceNotFound, eventID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/meetsync/internal/models"
	"github.com/iudanet/meetsync/internal/server/storage"
	"github.com/iudanet/meetsync/pkg/api"
)

// outcome результат применения изменения без ошибки
type outcome int

const (
	// outcomeNoop изменение уже отражено в хранилище (повтор пакета)
	outcomeNoop outcome = iota
	// outcomeApplied хранилище изменено
	outcomeApplied
	// outcomeServerWins серверная версия новее изменения
	outcomeServerWins
)

type applyResult struct {
	server  models.Entity // текущая версия для outcomeServerWins
	outcome outcome
}

// applier применяет изменения одной таблицы
type applier interface {
	apply(ctx context.Context, repos storage.Repositories, change *api.Change, ts time.Time) (applyResult, error)
	snapshot(ctx context.Context, repos storage.Repositories, recordID string) (models.Entity, error)
}

// entityApplier реализует CREATE/UPDATE/DELETE поверх storage.Store.
// Правила конкретной таблицы задаются функциями.
type entityApplier[E models.Entity] struct {
	store func(repos storage.Repositories) storage.Store[E]
	times func(e E) (createdAt, updatedAt time.Time)
	stamp func(e E, createdAt, updatedAt time.Time)
	equal func(a, b E) bool

	// необязательные проверки прав и ссылок
	checkCreate func(ctx context.Context, repos storage.Repositories, userID string, e E) error
	checkUpdate func(ctx context.Context, repos storage.Repositories, userID string, e, current E) error
	checkDelete func(ctx context.Context, repos storage.Repositories, userID string, current E) error

	// parents возвращает записи, каскадное удаление которых удаляет и e
	parents func(e E) []recordRef

	table models.Table
}

// recordRef ссылка на запись другой таблицы
type recordRef struct {
	table models.Table
	id    string
}

func (a *entityApplier[E]) apply(ctx context.Context, repos storage.Repositories, change *api.Change, ts time.Time) (applyResult, error) {
	store := a.store(repos)

	switch models.Operation(change.Operation) {
	case models.OperationCreate:
		entity, err := a.decode(change)
		if err != nil {
			return applyResult{}, err
		}

		buried, err := a.buried(ctx, repos, entity, ts)
		if err != nil || buried {
			return applyResult{outcome: outcomeNoop}, err
		}

		_, err = store.Get(ctx, change.RecordID)
		if err == nil {
			// Запись уже создана, например повторной отправкой пакета
			return applyResult{outcome: outcomeNoop}, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return applyResult{}, fmt.Errorf("failed to get %s: %w", a.table, err)
		}

		if a.checkCreate != nil {
			if err := a.checkCreate(ctx, repos, change.UserID, entity); err != nil {
				return applyResult{}, err
			}
		}
		a.stamp(entity, ts, ts)
		if err := store.Create(ctx, entity); err != nil {
			return applyResult{}, err
		}
		return applyResult{outcome: outcomeApplied}, nil

	case models.OperationUpdate:
		entity, err := a.decode(change)
		if err != nil {
			return applyResult{}, err
		}

		buried, err := a.buried(ctx, repos, entity, ts)
		if err != nil || buried {
			return applyResult{outcome: outcomeNoop}, err
		}

		current, err := store.Get(ctx, change.RecordID)
		if err != nil {
			return applyResult{}, fmt.Errorf("failed to get %s: %w", a.table, err)
		}

		createdAt, updatedAt := a.times(current)
		if updatedAt.After(ts) {
			return applyResult{outcome: outcomeServerWins, server: current}, nil
		}
		if updatedAt.Equal(ts) && a.equal(current, entity) {
			return applyResult{outcome: outcomeNoop}, nil
		}

		if a.checkUpdate != nil {
			if err := a.checkUpdate(ctx, repos, change.UserID, entity, current); err != nil {
				return applyResult{}, err
			}
		}
		a.stamp(entity, createdAt, ts)
		if err := store.Update(ctx, entity); err != nil {
			return applyResult{}, err
		}
		return applyResult{outcome: outcomeApplied}, nil

	case models.OperationDelete:
		current, err := store.Get(ctx, change.RecordID)
		if errors.Is(err, storage.ErrNotFound) {
			return applyResult{outcome: outcomeNoop}, nil
		}
		if err != nil {
			return applyResult{}, fmt.Errorf("failed to get %s: %w", a.table, err)
		}

		if a.checkDelete != nil {
			if err := a.checkDelete(ctx, repos, change.UserID, current); err != nil {
				return applyResult{}, err
			}
		}
		if err := store.Delete(ctx, change.RecordID); err != nil {
			return applyResult{}, err
		}
		if err := repos.Tombstones.Put(ctx, a.table, change.RecordID, ts); err != nil {
			return applyResult{}, err
		}
		return applyResult{outcome: outcomeApplied}, nil

	default:
		return applyResult{}, fmt.Errorf("%w: %q", ErrUnknownOperation, change.Operation)
	}
}

// buried сообщает, что запись или ее родитель удалены не раньше ts.
// Такое изменение устарело и не должно воскрешать запись.
func (a *entityApplier[E]) buried(ctx context.Context, repos storage.Repositories, e E, ts time.Time) (bool, error) {
	refs := []recordRef{{table: a.table, id: e.EntityID()}}
	if a.parents != nil {
		refs = append(refs, a.parents(e)...)
	}

	for _, ref := range refs {
		deletedAt, err := repos.Tombstones.Get(ctx, ref.table, ref.id)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("failed to get tombstone of %s: %w", ref.table, err)
		}
		if !ts.After(deletedAt) {
			return true, nil
		}
	}
	return false, nil
}

func (a *entityApplier[E]) snapshot(ctx context.Context, repos storage.Repositories, recordID string) (models.Entity, error) {
	entity, err := a.store(repos).Get(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// decode разбирает снимок сущности и сверяет его ID с RecordID изменения
func (a *entityApplier[E]) decode(change *api.Change) (E, error) {
	var zero E

	decoded, err := models.DecodeEntity(a.table, change.Data)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrInvalidChange, err)
	}
	entity, ok := decoded.(E)
	if !ok {
		return zero, fmt.Errorf("%w: unexpected %s payload type %T", ErrInvalidChange, a.table, decoded)
	}
	if entity.EntityID() != change.RecordID {
		return zero, fmt.Errorf("%w: payload id %q does not match record id %q",
			ErrInvalidChange, entity.EntityID(), change.RecordID)
	}

	return entity, nil
}

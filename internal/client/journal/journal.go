package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/iudanet/meetsync/internal/client/storage"
	"github.com/iudanet/meetsync/internal/crdt"
	"github.com/iudanet/meetsync/internal/models"
	"github.com/iudanet/meetsync/internal/validation"
)

// Journal хранит локальные изменения, ожидающие отправки на сервер.
// Записи только добавляются при Record и удаляются только при Acknowledge.
type Journal struct {
	storage storage.JournalStorage
	clock   *crdt.MonotonicClock
	logger  *slog.Logger
	// appendMu держит выдачу метки времени и добавление записи вместе:
	// порядок записей в журнале совпадает с порядком их меток
	appendMu sync.Mutex
}

// New создает журнал поверх хранилища.
// Часы сдвигаются на метку последней записи, чтобы после перезапуска
// метки времени не пошли назад. Если clock == nil, используются системные часы.
func New(ctx context.Context, store storage.JournalStorage, clock *crdt.MonotonicClock, logger *slog.Logger) (*Journal, error) {
	if clock == nil {
		clock = crdt.NewMonotonicClock()
	}

	last, err := store.LastChange(ctx)
	switch {
	case err == nil:
		clock.Observe(last.Timestamp)
	case errors.Is(err, storage.ErrChangeNotFound):
		// пустой журнал
	default:
		return nil, fmt.Errorf("failed to read last journal entry: %w", err)
	}

	return &Journal{
		storage: store,
		clock:   clock,
		logger:  logger,
	}, nil
}

// Record сериализует data, проверяет его по схеме таблицы и добавляет запись в конец журнала.
// Для DELETE data может быть nil.
func (j *Journal) Record(
	ctx context.Context,
	table models.Table,
	operation models.Operation,
	recordID string,
	data any,
	userID string,
) (*models.LocalChange, error) {
	if !table.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	if !operation.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, operation)
	}
	if err := validation.ValidateID("record id", recordID); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidData)
	}

	payload, err := encodeData(data)
	if err != nil {
		return nil, err
	}

	if operation != models.OperationDelete {
		if err := validatePayload(table, recordID, payload); err != nil {
			return nil, err
		}
	}

	change := &models.LocalChange{
		ID:        uuid.New().String(),
		Table:     table,
		Operation: operation,
		RecordID:  recordID,
		UserID:    userID,
		Data:      payload,
	}

	j.appendMu.Lock()
	change.Timestamp = j.clock.Now()
	err = j.storage.AppendChange(ctx, change)
	j.appendMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to append change: %w", err)
	}

	j.logger.Debug("Change recorded",
		"change_id", change.ID,
		"table", change.Table,
		"operation", change.Operation,
		"record_id", change.RecordID)

	return change, nil
}

// Pending возвращает все неподтвержденные записи в порядке добавления
func (j *Journal) Pending(ctx context.Context) ([]*models.LocalChange, error) {
	changes, err := j.storage.ListChanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending changes: %w", err)
	}
	return changes, nil
}

// Acknowledge удаляет записи по ID. Неизвестные ID игнорируются.
// Возвращает количество удаленных записей.
func (j *Journal) Acknowledge(ctx context.Context, ids ...string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	removed, err := j.storage.RemoveChanges(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to acknowledge changes: %w", err)
	}

	j.logger.Debug("Changes acknowledged", "requested", len(ids), "removed", removed)
	return removed, nil
}

// PendingCount возвращает количество неподтвержденных записей
func (j *Journal) PendingCount(ctx context.Context) (int, error) {
	count, err := j.storage.CountChanges(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending changes: %w", err)
	}
	return count, nil
}

// HasPending проверяет, есть ли неподтвержденные записи
func (j *Journal) HasPending(ctx context.Context) (bool, error) {
	count, err := j.PendingCount(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// encodeData приводит data к JSON. Уже сериализованные данные
// ([]byte, json.RawMessage) должны быть валидным JSON.
func encodeData(data any) (json.RawMessage, error) {
	switch v := data.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return checkJSON(v)
	case []byte:
		return checkJSON(v)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal data: %w", ErrInvalidData, err)
	}
	return raw, nil
}

func checkJSON(raw []byte) (json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: data is not valid JSON", ErrInvalidData)
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out, nil
}

// validatePayload проверяет, что снимок соответствует схеме таблицы и описывает recordID
func validatePayload(table models.Table, recordID string, payload json.RawMessage) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: data is required for %s", ErrInvalidData, table)
	}

	entity, err := models.DecodeEntity(table, payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	if entity.EntityID() != recordID {
		return fmt.Errorf("%w: data id %q does not match record id %q", ErrInvalidData, entity.EntityID(), recordID)
	}

	return nil
}

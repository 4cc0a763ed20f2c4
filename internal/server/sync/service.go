package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/iudanet/meetsync/internal/models"
	"github.com/iudanet/meetsync/internal/server/metrics"
	"github.com/iudanet/meetsync/internal/server/notify"
	"github.com/iudanet/meetsync/internal/server/storage"
	"github.com/iudanet/meetsync/internal/validation"
	"github.com/iudanet/meetsync/pkg/api"
)

// Service применяет пакеты изменений клиентов к авторитетному хранилищу.
// Каждое изменение выполняется в отдельной транзакции, ошибка одного
// изменения не прерывает обработку пакета.
type Service struct {
	storage  storage.Storage
	notifier notify.Notifier
	metrics  *metrics.Sync
	logger   *slog.Logger
	appliers map[models.Table]applier
	now      func() time.Time
}

// NewService создает сервис синхронизации. notifier и m могут быть nil.
func NewService(store storage.Storage, notifier notify.Notifier, m *metrics.Sync, logger *slog.Logger) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}

	return &Service{
		storage:  store,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		appliers: newAppliers(),
		now:      time.Now,
	}
}

// ProcessSyncChanges применяет изменения в порядке запроса от имени callerUserID.
// Конфликты возвращаются в ответе, Success=false только при сбое вне
// обработки отдельного изменения.
func (s *Service) ProcessSyncChanges(ctx context.Context, req api.SyncRequest, callerUserID string) (resp api.SyncResponse) {
	started := time.Now()
	resp = api.SyncResponse{
		Success:   true,
		Conflicts: []api.SyncConflict{},
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Sync batch failed with panic",
				"user_id", callerUserID,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			resp.Success = false
			resp.Message = fmt.Sprintf("internal error while processing batch: %v", r)
		}
		resp.ServerTimestamp = s.now().UTC()
		s.metrics.ObserveBatch(len(req.Changes), started, resp.Success)
	}()

	for i := range req.Changes {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("Sync batch interrupted",
				"user_id", callerUserID,
				"processed", i,
				"total", len(req.Changes),
				"error", err,
			)
			resp.Success = false
			resp.Message = fmt.Sprintf("batch interrupted after %d of %d changes: %v", i, len(req.Changes), err)
			return resp
		}

		change := &req.Changes[i]
		result, conflict := s.processChange(ctx, change, callerUserID)
		table, operation := metricLabels(change)
		s.metrics.ObserveChange(table, operation, result)

		switch {
		case conflict != nil:
			resp.Conflicts = append(resp.Conflicts, *conflict)
		case result == metrics.OutcomeApplied:
			resp.AppliedChanges++
			s.notify(ctx, change, callerUserID)
		}
	}

	s.logger.Info("Sync batch processed",
		"user_id", callerUserID,
		"changes", len(req.Changes),
		"applied", resp.AppliedChanges,
		"conflicts", len(resp.Conflicts),
	)

	return resp
}

// processChange применяет одно изменение и возвращает исход для метрик
// и конфликт, если изменение не применено в исходном виде
func (s *Service) processChange(ctx context.Context, change *api.Change, callerUserID string) (string, *api.SyncConflict) {
	logger := s.logger.With(
		"change_id", change.ID,
		"table", change.Table,
		"operation", change.Operation,
		"record_id", change.RecordID,
	)

	// Клиент не может отправлять изменения от имени другого пользователя
	if change.UserID != callerUserID {
		logger.Warn("Change rejected: author does not match caller",
			"user_id", callerUserID,
			"change_user_id", change.UserID,
		)
		return metrics.OutcomeRejected, newConflict(change, api.ResolutionRejected, nil)
	}

	a, ok := s.appliers[models.Table(change.Table)]
	if !ok {
		logger.Warn("Change rejected", "error", fmt.Errorf("%w: %q", models.ErrUnknownTable, change.Table))
		return metrics.OutcomeRejected, newConflict(change, api.ResolutionRejected, nil)
	}

	if err := validateChange(change); err != nil {
		logger.Warn("Change rejected", "error", err)
		return metrics.OutcomeRejected, newConflict(change, api.ResolutionRejected, nil)
	}

	result, err := s.apply(ctx, a, change)
	if err != nil {
		logger.Warn("Change rejected", "error", err)
		return metrics.OutcomeRejected, newConflict(change, api.ResolutionRejected, s.serverData(ctx, a, change.RecordID))
	}

	switch result.outcome {
	case outcomeServerWins:
		logger.Info("Change overridden by newer server version")
		return metrics.OutcomeServerWins, newConflict(change, api.ResolutionServerWins, encodeEntity(result.server))
	case outcomeApplied:
		logger.Debug("Change applied")
		return metrics.OutcomeApplied, nil
	default:
		logger.Debug("Change already applied")
		return metrics.OutcomeNoop, nil
	}
}

// apply выполняет изменение в отдельной транзакции. Паника внутри
// транзакции превращается в ошибку этого изменения.
func (s *Service) apply(ctx context.Context, a applier, change *api.Change) (result applyResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Change panicked",
				"change_id", change.ID,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			err = fmt.Errorf("panic while applying change: %v", r)
		}
	}()

	ts := normalizeTimestamp(change.Timestamp)
	err = s.storage.InTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		var applyErr error
		result, applyErr = a.apply(ctx, repos, change, ts)
		return applyErr
	})
	return result, err
}

// serverData возвращает текущую версию записи, если ее удалось прочитать
func (s *Service) serverData(ctx context.Context, a applier, recordID string) (data json.RawMessage) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Server data lookup panicked", "record_id", recordID, "panic", r)
			data = nil
		}
	}()

	err := s.storage.InTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		entity, err := a.snapshot(ctx, repos, recordID)
		if err != nil {
			return err
		}
		data = encodeEntity(entity)
		return nil
	})
	if err != nil {
		s.logger.Debug("Server data unavailable for conflict", "record_id", recordID, "error", err)
		return nil
	}
	return data
}

// notify публикует уведомление о примененном изменении. Ошибки только логируются.
func (s *Service) notify(ctx context.Context, change *api.Change, userID string) {
	n := notify.ChangeNotification{
		Timestamp: normalizeTimestamp(change.Timestamp),
		AppliedAt: s.now().UTC(),
		ChangeID:  change.ID,
		Table:     change.Table,
		Operation: change.Operation,
		RecordID:  change.RecordID,
		UserID:    userID,
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.metrics.ObserveNotifyError()
		s.logger.Warn("Failed to publish change notification", "change_id", change.ID, "error", err)
	}
}

func validateChange(change *api.Change) error {
	if err := validation.ValidateID("change id", change.ID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChange, err)
	}
	if err := validation.ValidateID("record id", change.RecordID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChange, err)
	}
	if change.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp is required", ErrInvalidChange)
	}
	if !models.Operation(change.Operation).Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownOperation, change.Operation)
	}
	return nil
}

// metricLabels ограничивает значения меток известными таблицами и операциями
func metricLabels(change *api.Change) (table, operation string) {
	table, operation = change.Table, change.Operation
	if !models.Table(table).Valid() {
		table = "unknown"
	}
	if !models.Operation(operation).Valid() {
		operation = "unknown"
	}
	return table, operation
}

// normalizeTimestamp приводит метку времени к точности, которую сохраняют все хранилища
func normalizeTimestamp(ts time.Time) time.Time {
	return ts.UTC().Truncate(time.Microsecond)
}

func newConflict(change *api.Change, resolution api.Resolution, serverData json.RawMessage) *api.SyncConflict {
	return &api.SyncConflict{
		ChangeID:   change.ID,
		Table:      change.Table,
		RecordID:   change.RecordID,
		Resolution: resolution,
		ClientData: change.Data,
		ServerData: serverData,
	}
}

func encodeEntity(entity models.Entity) json.RawMessage {
	if entity == nil {
		return nil
	}
	data, err := json.Marshal(entity)
	if err != nil {
		return nil
	}
	return data
}

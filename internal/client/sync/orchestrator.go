package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/iudanet/meetsync/internal/client/auth"
	"github.com/iudanet/meetsync/internal/client/netstatus"
	"github.com/iudanet/meetsync/internal/models"
	"github.com/iudanet/meetsync/pkg/api"
)

// Значения по умолчанию для повторных попыток
const (
	DefaultBaseDelay  = time.Second
	DefaultMaxRetries = 3
)

// Config параметры повторной доставки пакета
type Config struct {
	BaseDelay  time.Duration // пауза перед первым повтором, далее удваивается
	MaxDelay   time.Duration // верхняя граница паузы (0 - без ограничения)
	MaxRetries int           // число повторов после первой попытки
}

// Result итог одного цикла синхронизации
type Result struct {
	Response       *api.SyncResponse  // ответ сервера
	Conflicts      []api.SyncConflict // изменения, не примененные в исходном виде
	Submitted      int                // количество отправленных изменений
	Acknowledged   int                // количество удаленных из журнала изменений
	AppliedChanges int                // количество изменений, примененных сервером
	Attempts       int                // количество вызовов транспорта
}

// Orchestrator отправляет журнал локальных изменений на сервер.
// Одновременно выполняется не более одного цикла синхронизации.
type Orchestrator struct {
	journal   Journal
	transport Transport
	network   netstatus.Source
	tokens    auth.TokenProvider
	status    *StatusBroadcaster
	logger    *slog.Logger
	sem       chan struct{}
	cfg       Config
}

// NewOrchestrator создает оркестратор синхронизации
func NewOrchestrator(
	journal Journal,
	transport Transport,
	network netstatus.Source,
	tokens auth.TokenProvider,
	cfg Config,
	logger *slog.Logger,
) *Orchestrator {
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return &Orchestrator{
		journal:   journal,
		transport: transport,
		network:   network,
		tokens:    tokens,
		status:    NewStatusBroadcaster(),
		logger:    logger,
		sem:       make(chan struct{}, 1),
		cfg:       cfg,
	}
}

// RecordLocalChange добавляет локальное изменение в журнал
func (o *Orchestrator) RecordLocalChange(
	ctx context.Context,
	table models.Table,
	operation models.Operation,
	recordID string,
	data any,
	userID string,
) (*models.LocalChange, error) {
	change, err := o.journal.Record(ctx, table, operation, recordID, data, userID)
	if err != nil {
		return nil, err
	}

	// Обновляем только счетчик: состояние мог сменить параллельный TriggerSync
	count, err := o.journal.PendingCount(ctx)
	if err != nil {
		o.logger.Warn("Failed to count pending changes", "error", err)
		return change, nil
	}
	o.status.Update(func(s Status) Status {
		s.Pending = count
		return s
	})

	return change, nil
}

// Status возвращает текущее состояние синхронизации
func (o *Orchestrator) Status() Status {
	return o.status.Current()
}

// Subscribe подписывает на изменения состояния синхронизации
func (o *Orchestrator) Subscribe() (<-chan Status, func()) {
	return o.status.Subscribe()
}

// PendingCount возвращает количество изменений, ожидающих отправки
func (o *Orchestrator) PendingCount(ctx context.Context) (int, error) {
	return o.journal.PendingCount(ctx)
}

// Close закрывает подписки на состояние
func (o *Orchestrator) Close() {
	o.status.Close()
}

// TriggerSync выполняет один цикл синхронизации:
// проверка сети и токена, отправка всех ожидающих изменений с повторами,
// удаление подтвержденных изменений из журнала.
func (o *Orchestrator) TriggerSync(ctx context.Context) (*Result, error) {
	// Single-flight: второй вызов ждет завершения первого
	select {
	case o.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-o.sem }()

	if !o.network.IsAvailable(ctx) {
		o.logger.Warn("Sync skipped: network unavailable")
		return nil, o.fail(ctx, ErrNetworkUnavailable)
	}

	token, err := o.tokens.CurrentToken(ctx)
	if err != nil {
		return nil, o.fail(ctx, fmt.Errorf("failed to get access token: %w", err))
	}
	if token == "" {
		o.logger.Warn("Sync skipped: no access token")
		return nil, o.fail(ctx, ErrMissingCredentials)
	}

	pending, err := o.journal.Pending(ctx)
	if err != nil {
		return nil, o.fail(ctx, fmt.Errorf("failed to read journal: %w", err))
	}
	if len(pending) == 0 {
		o.logger.Debug("Nothing to sync")
		o.status.Publish(Status{State: StateIdle})
		return &Result{Response: &api.SyncResponse{Success: true, Conflicts: []api.SyncConflict{}}}, nil
	}

	o.status.Publish(Status{State: StateSyncing, Pending: len(pending)})
	o.logger.Info("Starting synchronization", "changes", len(pending))

	req := api.SyncRequest{Changes: make([]api.Change, 0, len(pending))}
	ids := make([]string, 0, len(pending))
	for _, change := range pending {
		req.Changes = append(req.Changes, toAPIChange(change))
		ids = append(ids, change.ID)
	}

	resp, attempts, err := o.deliver(ctx, token, req)
	result := &Result{Submitted: len(pending), Attempts: attempts, Response: resp}
	if err != nil {
		return result, o.fail(ctx, err)
	}

	result.AppliedChanges = resp.AppliedChanges
	result.Conflicts = resp.Conflicts

	if !resp.Success {
		// Сервер не смог обработать пакет целиком: журнал не трогаем,
		// следующий вызов отправит те же изменения
		o.logger.Error("Server reported sync failure",
			"message", resp.Message,
			"applied", resp.AppliedChanges,
			"conflicts", len(resp.Conflicts))
		return result, o.fail(ctx, fmt.Errorf("%w: %s", ErrServerRejected, resp.Message))
	}

	// Конфликтные изменения тоже удаляются: сервер уже решил их судьбу
	removed, err := o.journal.Acknowledge(ctx, ids...)
	if err != nil {
		return result, o.fail(ctx, fmt.Errorf("failed to acknowledge synced changes: %w", err))
	}
	result.Acknowledged = removed

	for _, c := range resp.Conflicts {
		o.logger.Warn("Change not applied by server",
			"change_id", c.ChangeID,
			"table", c.Table,
			"record_id", c.RecordID,
			"resolution", c.Resolution)
	}

	o.logger.Info("Synchronization completed",
		"submitted", result.Submitted,
		"applied", result.AppliedChanges,
		"conflicts", len(result.Conflicts),
		"attempts", result.Attempts)

	o.status.Publish(Status{State: StateIdle, Pending: o.pendingOrLast(ctx, 0)})
	return result, nil
}

// deliver вызывает транспорт с экспоненциальной паузой между попытками.
// Возвращает ответ, количество вызовов транспорта и ошибку.
func (o *Orchestrator) deliver(ctx context.Context, token string, req api.SyncRequest) (*api.SyncResponse, int, error) {
	backoff := retry.NewExponential(o.cfg.BaseDelay)
	if o.cfg.MaxDelay > 0 {
		backoff = retry.WithCappedDuration(o.cfg.MaxDelay, backoff)
	}
	backoff = retry.WithMaxRetries(uint64(o.cfg.MaxRetries), backoff)

	var (
		resp     *api.SyncResponse
		lastErr  error
		attempts int
	)

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		r, err := o.transport.Sync(ctx, token, req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			o.logger.Warn("Sync attempt failed", "attempt", attempts, "error", err)
			return retry.RetryableError(err)
		}
		if r == nil {
			lastErr = errors.New("empty sync response")
			return retry.RetryableError(lastErr)
		}
		resp = r
		return nil
	})

	switch {
	case err == nil:
		return resp, attempts, nil
	case ctx.Err() != nil:
		return nil, attempts, ctx.Err()
	default:
		if lastErr == nil {
			lastErr = err
		}
		return nil, attempts, &TransportError{Attempts: attempts, Retries: o.cfg.MaxRetries, Err: lastErr}
	}
}

// fail публикует состояние Error и возвращает err
func (o *Orchestrator) fail(ctx context.Context, err error) error {
	o.status.Publish(Status{
		State:     StateError,
		LastError: err.Error(),
		Pending:   o.pendingOrLast(ctx, o.status.Current().Pending),
	})
	return err
}

// pendingOrLast возвращает размер журнала или fallback, если его не удалось прочитать
func (o *Orchestrator) pendingOrLast(ctx context.Context, fallback int) int {
	count, err := o.journal.PendingCount(ctx)
	if err != nil {
		o.logger.Warn("Failed to count pending changes", "error", err)
		return fallback
	}
	return count
}

// toAPIChange конвертирует запись журнала в формат API
func toAPIChange(change *models.LocalChange) api.Change {
	return api.Change{
		ID:        change.ID,
		Table:     string(change.Table),
		Operation: string(change.Operation),
		RecordID:  change.RecordID,
		UserID:    change.UserID,
		Data:      change.Data,
		Timestamp: change.Timestamp,
	}
}

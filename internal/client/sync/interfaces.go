package sync

import (
	"context"

	"github.com/iudanet/meetsync/internal/models"
	"github.com/iudanet/meetsync/pkg/api"
)

//go:generate moq -out transport_mock.go . Transport
//go:generate moq -out journal_mock.go . Journal

// Transport доставляет пакет изменений на сервер.
// Любая ошибка (сеть, таймаут, код не 2xx, битый ответ) считается временной.
type Transport interface {
	Sync(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error)
}

// Journal журнал локальных изменений, ожидающих отправки
type Journal interface {
	Record(ctx context.Context, table models.Table, operation models.Operation, recordID string, data any, userID string) (*models.LocalChange, error)
	Pending(ctx context.Context) ([]*models.LocalChange, error)
	Acknowledge(ctx context.Context, ids ...string) (int, error)
	PendingCount(ctx context.Context) (int, error)
}

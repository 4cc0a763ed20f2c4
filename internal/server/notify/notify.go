package notify

import (
	"context"
	"time"
)

//go:generate moq -out notifier_mock.go . Notifier

// ChangeNotification сообщение о примененном на сервере изменении
type ChangeNotification struct {
	Timestamp time.Time `json:"timestamp"`
	AppliedAt time.Time `json:"applied_at"`
	ChangeID  string    `json:"change_id"`
	Table     string    `json:"table"`
	Operation string    `json:"operation"`
	RecordID  string    `json:"record_id"`
	UserID    string    `json:"user_id"`
}

// RoutingKey возвращает ключ маршрутизации вида meetsync.<table>.<operation>
func (n ChangeNotification) RoutingKey() string {
	return "meetsync." + n.Table + "." + n.Operation
}

// Notifier publishes applied changes to interested collaborators
type Notifier interface {
	Notify(ctx context.Context, n ChangeNotification) error
	Close() error
}

// Nop уведомления отключены
type Nop struct{}

// Notify ничего не делает
func (Nop) Notify(context.Context, ChangeNotification) error { return nil }

// Close ничего не делает
func (Nop) Close() error { return nil }

package models

import (
	"encoding/json"
	"time"
)

// Table идентифицирует тип сущности, к которой относится изменение.
type Table string

// Таблицы, участвующие в синхронизации
const (
	TableEvents       Table = "events"
	TableParticipants Table = "participants"
	TableVotes        Table = "votes"
)

// Tables возвращает все синхронизируемые таблицы.
func Tables() []Table {
	return []Table{TableEvents, TableParticipants, TableVotes}
}

// Valid проверяет, что таблица известна.
func (t Table) Valid() bool {
	switch t {
	case TableEvents, TableParticipants, TableVotes:
		return true
	}
	return false
}

// Operation тип локальной мутации.
type Operation string

// Операции журнала изменений
const (
	OperationCreate Operation = "CREATE"
	OperationUpdate Operation = "UPDATE"
	OperationDelete Operation = "DELETE"
)

// Valid проверяет, что операция известна.
func (o Operation) Valid() bool {
	switch o {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// LocalChange представляет запись журнала изменений, ожидающую отправки на сервер.
// Принадлежит журналу до подтверждения сервером или окончательного отклонения.
type LocalChange struct {
	Timestamp time.Time       `json:"timestamp"` // Timestamp часы устройства, не убывают в пределах устройства
	ID        string          `json:"id"`        // ID уникальный идентификатор изменения (UUID)
	Table     Table           `json:"table"`     // Table таблица сущности
	Operation Operation       `json:"operation"` // Operation CREATE, UPDATE или DELETE
	RecordID  string          `json:"record_id"` // RecordID идентификатор сущности
	UserID    string          `json:"user_id"`   // UserID автор изменения
	Data      json.RawMessage `json:"data"`      // Data снимок сущности на момент изменения
}

// Clone создает глубокую копию записи
func (c *LocalChange) Clone() *LocalChange {
	data := make(json.RawMessage, len(c.Data))
	copy(data, c.Data)

	return &LocalChange{
		Timestamp: c.Timestamp,
		ID:        c.ID,
		Table:     c.Table,
		Operation: c.Operation,
		RecordID:  c.RecordID,
		UserID:    c.UserID,
		Data:      data,
	}
}

package api

import (
	"encoding/json"
	"time"
)

// Resolution исход конфликта для конкретного изменения
type Resolution string

const (
	// ResolutionRejected изменение отклонено сервером (чужой user_id, битые данные, нет связанной записи)
	ResolutionRejected Resolution = "REJECTED"
	// ResolutionServerWins серверная версия новее, изменение клиента не применено
	ResolutionServerWins Resolution = "SERVER_WINS"
)

// Change представляет одно локальное изменение в запросе синхронизации
type Change struct {
	Timestamp time.Time       `json:"timestamp"`
	ID        string          `json:"id"`
	Table     string          `json:"table"`
	Operation string          `json:"operation"`
	RecordID  string          `json:"record_id"`
	UserID    string          `json:"user_id"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// SyncRequest представляет пакет изменений от клиента.
// Личность вызывающего передается вне тела запроса (Bearer токен).
type SyncRequest struct {
	Changes []Change `json:"changes"`
}

// SyncConflict описывает изменение, которое не было применено в исходном виде
type SyncConflict struct {
	ChangeID   string          `json:"change_id"`
	Table      string          `json:"table"`
	RecordID   string          `json:"record_id"`
	Resolution Resolution      `json:"resolution"`
	ClientData json.RawMessage `json:"client_data,omitempty"`
	ServerData json.RawMessage `json:"server_data,omitempty"` // пусто, если серверная версия неизвестна
}

// SyncResponse представляет ответ сервера на синхронизацию
type SyncResponse struct {
	ServerTimestamp time.Time      `json:"server_timestamp"`
	Message         string         `json:"message,omitempty"`
	Conflicts       []SyncConflict `json:"conflicts"`
	AppliedChanges  int            `json:"applied_changes"` // количество изменений, реально примененных к хранилищу
	Success         bool           `json:"success"`
}

// HasConflict проверяет, есть ли конфликт для изменения с указанным ID
func (r *SyncResponse) HasConflict(changeID string) bool {
	for _, c := range r.Conflicts {
		if c.ChangeID == changeID {
			return true
		}
	}
	return false
}

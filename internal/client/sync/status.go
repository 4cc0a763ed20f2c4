package sync

import (
	"time"

	"github.com/iudanet/meetsync/internal/client/broadcast"
)

// State состояние оркестратора синхронизации
type State string

// Состояния синхронизации: Idle -> Syncing -> (Idle | Error)
const (
	StateIdle    State = "idle"
	StateSyncing State = "syncing"
	StateError   State = "error"
)

// Status снимок состояния синхронизации для слоя представления
type Status struct {
	UpdatedAt time.Time `json:"updated_at"`
	State     State     `json:"state"`
	LastError string    `json:"last_error,omitempty"`
	Pending   int       `json:"pending"`
}

// StatusBroadcaster рассылает последнее состояние синхронизации подписчикам.
// Подписчик, который не успевает читать, получает только самое новое состояние.
type StatusBroadcaster struct {
	b *broadcast.Broadcaster[Status]
}

// NewStatusBroadcaster создает broadcaster в состоянии Idle
func NewStatusBroadcaster() *StatusBroadcaster {
	return &StatusBroadcaster{b: broadcast.New(Status{State: StateIdle})}
}

// Current возвращает текущее состояние
func (s *StatusBroadcaster) Current() Status {
	return s.b.Current()
}

// Subscribe возвращает канал состояний и функцию отписки.
// В канале сразу лежит текущее состояние.
func (s *StatusBroadcaster) Subscribe() (<-chan Status, func()) {
	return s.b.Subscribe()
}

// Publish публикует новое состояние
func (s *StatusBroadcaster) Publish(status Status) {
	if status.UpdatedAt.IsZero() {
		status.UpdatedAt = time.Now().UTC()
	}
	s.b.Publish(status)
}

// Update меняет текущее состояние через fn без гонки с параллельными Publish
func (s *StatusBroadcaster) Update(fn func(Status) Status) {
	s.b.Update(func(cur Status) Status {
		next := fn(cur)
		next.UpdatedAt = time.Now().UTC()
		return next
	})
}

// Close закрывает каналы подписчиков
func (s *StatusBroadcaster) Close() {
	s.b.Close()
}

// Package netstatus определяет доступность сервера для клиента синхронизации.
package netstatus

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/meetsync/internal/client/broadcast"
	"github.com/iudanet/meetsync/pkg/api"
)

//go:generate moq -out source_mock.go . Source

// Source сообщает, доступна ли сеть
type Source interface {
	IsAvailable(ctx context.Context) bool
}

// Static источник, состояние которого задается вызывающим кодом
// (например, платформенным монитором сети).
type Static struct {
	status *broadcast.Broadcaster[bool]
	mu     sync.Mutex
}

// NewStatic создает источник с начальным состоянием
func NewStatic(available bool) *Static {
	return &Static{status: broadcast.New(available)}
}

// IsAvailable возвращает текущее состояние
func (s *Static) IsAvailable(_ context.Context) bool {
	return s.status.Current()
}

// SetAvailable меняет состояние и уведомляет подписчиков, если оно изменилось
func (s *Static) SetAvailable(available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Current() == available {
		return
	}
	s.status.Publish(available)
}

// Subscribe подписывает на изменения состояния
func (s *Static) Subscribe() (<-chan bool, func()) {
	return s.status.Subscribe()
}

// HealthChecker запрашивает health endpoint сервера
type HealthChecker interface {
	Health(ctx context.Context) (*api.HealthResponse, error)
}

// HealthProbe считает сеть доступной, если сервер отвечает на health check.
// Результат последней проверки кешируется и рассылается подписчикам при изменении.
type HealthProbe struct {
	checker  HealthChecker
	logger   *slog.Logger
	status   *broadcast.Broadcaster[bool]
	lastSeen time.Time
	timeout  time.Duration
	mu       sync.Mutex
}

// NewHealthProbe создает probe с таймаутом одной проверки
func NewHealthProbe(checker HealthChecker, timeout time.Duration, logger *slog.Logger) *HealthProbe {
	return &HealthProbe{
		checker: checker,
		timeout: timeout,
		logger:  logger,
		status:  broadcast.New(false),
	}
}

// IsAvailable выполняет health check с коротким таймаутом
func (p *HealthProbe) IsAvailable(ctx context.Context) bool {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.checker.Health(ctx)
	available := err == nil && resp != nil && resp.Status == "ok"
	if err != nil {
		p.logger.Debug("Health check failed", "error", err)
	}

	p.record(available)
	return available
}

// Last возвращает результат последней проверки и время ее выполнения
// (нулевое время, если проверок еще не было)
func (p *HealthProbe) Last() (bool, time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status.Current(), p.lastSeen
}

// Subscribe подписывает на изменения доступности
func (p *HealthProbe) Subscribe() (<-chan bool, func()) {
	return p.status.Subscribe()
}

func (p *HealthProbe) record(available bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	first := p.lastSeen.IsZero()
	p.lastSeen = time.Now()

	if first || p.status.Current() != available {
		p.logger.Info("Network availability changed", "available", available)
		p.status.Publish(available)
	}
}

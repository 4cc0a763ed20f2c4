package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы обработки изменения
const (
	OutcomeApplied    = "applied"
	OutcomeNoop       = "noop"
	OutcomeServerWins = "server_wins"
	OutcomeRejected   = "rejected"
)

// Sync метрики обработки пакетов синхронизации
type Sync struct {
	// ChangesProcessed counts changes by table, operation and outcome
	ChangesProcessed *prometheus.CounterVec

	// BatchDuration measures how long it takes to process an entire batch
	BatchDuration prometheus.Histogram

	// BatchSize tracks the number of changes received in each batch
	BatchSize prometheus.Histogram

	// BatchFailures counts batches answered with success=false
	BatchFailures prometheus.Counter

	// NotifyErrors counts failed change notifications
	NotifyErrors prometheus.Counter

	// RateLimited counts requests rejected by the rate limiter
	RateLimited prometheus.Counter
}

// NewSync регистрирует метрики в reg (prometheus.DefaultRegisterer в сервере,
// отдельный реестр в тестах)
func NewSync(reg prometheus.Registerer) *Sync {
	factory := promauto.With(reg)

	return &Sync{
		ChangesProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "meetsync_sync_changes_total",
			Help: "Total number of changes processed by the sync service",
		}, []string{"table", "operation", "outcome"}),

		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "meetsync_sync_batch_duration_seconds",
			Help:    "Duration of sync batch processing in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "meetsync_sync_batch_size",
			Help:    "Number of changes per sync batch",
			Buckets: []float64{1, 10, 50, 100, 500, 1000},
		}),

		BatchFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "meetsync_sync_batch_failures_total",
			Help: "Total number of sync batches that reported success=false",
		}),

		NotifyErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "meetsync_sync_notify_errors_total",
			Help: "Total number of change notifications that failed to publish",
		}),

		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "meetsync_http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		}),
	}
}

// ObserveChange учитывает обработанное изменение
func (m *Sync) ObserveChange(table, operation, outcome string) {
	if m == nil {
		return
	}
	m.ChangesProcessed.WithLabelValues(table, operation, outcome).Inc()
}

// ObserveBatch учитывает обработанный пакет
func (m *Sync) ObserveBatch(size int, started time.Time, success bool) {
	if m == nil {
		return
	}
	m.BatchSize.Observe(float64(size))
	m.BatchDuration.Observe(time.Since(started).Seconds())
	if !success {
		m.BatchFailures.Inc()
	}
}

// ObserveNotifyError учитывает неудачное уведомление
func (m *Sync) ObserveNotifyError() {
	if m == nil {
		return
	}
	m.NotifyErrors.Inc()
}

// ObserveRateLimited учитывает отклоненный лимитером запрос
func (m *Sync) ObserveRateLimited() {
	if m == nil {
		return
	}
	m.RateLimited.Inc()
}

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iudanet/meetsync/internal/server/handlers"
	"github.com/iudanet/meetsync/internal/server/metrics"
	"github.com/iudanet/meetsync/pkg/api"
)

// Limiter решает, можно ли обработать еще один запрос для ключа
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryLimiter представляет rate limiter на основе токен-бакета (token bucket).
// Подходит для одного экземпляра сервера.
type MemoryLimiter struct {
	buckets  map[string]*bucket
	now      func() time.Time
	cleanupC chan struct{}
	stopOnce sync.Once
	rate     int
	window   time.Duration
	mu       sync.Mutex
}

// bucket представляет bucket для конкретного ключа
type bucket struct {
	lastRefill time.Time
	tokens     int
}

// NewMemoryLimiter создает новый rate limiter.
// rate - максимальное количество запросов за window.
func NewMemoryLimiter(rate int, window time.Duration) *MemoryLimiter {
	rl := &MemoryLimiter{
		buckets:  make(map[string]*bucket),
		now:      time.Now,
		rate:     rate,
		window:   window,
		cleanupC: make(chan struct{}),
	}

	// Периодическая очистка неактивных buckets
	go rl.cleanup()

	return rl
}

func (rl *MemoryLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupOldBuckets()
		case <-rl.cleanupC:
			return
		}
	}
}

// cleanupOldBuckets удаляет buckets, которые не использовались дольше двух окон
func (rl *MemoryLimiter) cleanupOldBuckets() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.lastRefill) > rl.window*2 {
			delete(rl.buckets, key)
		}
	}
}

// Stop останавливает cleanup goroutine
func (rl *MemoryLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.cleanupC) })
}

// Allow проверяет, разрешен ли запрос для данного ключа
func (rl *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, exists := rl.buckets[key]
	if !exists {
		b = &bucket{tokens: rl.rate, lastRefill: now}
		rl.buckets[key] = b
	}

	// Пополняем токены по истечении окна
	if now.Sub(b.lastRefill) >= rl.window {
		b.tokens = rl.rate
		b.lastRefill = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true, nil
	}
	return false, nil
}

// RedisLimiter ограничивает частоту запросов фиксированным окном в Redis.
// Счетчики общие для всех экземпляров сервера.
type RedisLimiter struct {
	client *redis.Client
	now    func() time.Time
	prefix string
	rate   int
	window time.Duration
}

// NewRedisLimiter подключается к Redis по URL и проверяет соединение
func NewRedisLimiter(ctx context.Context, redisURL string, rate int, window time.Duration) (*RedisLimiter, error) {
	if window < time.Millisecond {
		return nil, fmt.Errorf("rate window %s is shorter than 1ms", window)
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisLimiter{
		client: client,
		now:    time.Now,
		prefix: "meetsync:ratelimit:",
		rate:   rate,
		window: window,
	}, nil
}

// key ключ счетчика текущего окна
func (l *RedisLimiter) key(key string) string {
	slot := l.now().UnixMilli() / l.window.Milliseconds()
	return fmt.Sprintf("%s%s:%d", l.prefix, key, slot)
}

// Allow увеличивает счетчик окна и сравнивает его с лимитом
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.PExpire(ctx, k, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}

	return incr.Val() <= int64(l.rate), nil
}

// Close закрывает соединение с Redis
func (l *RedisLimiter) Close() error {
	return l.client.Close()
}

// RateLimitMiddleware создает middleware для ограничения частоты запросов.
// Ключ - user_id из контекста (middleware ставится после AuthMiddleware), иначе IP адрес.
// Если лимитер недоступен, запрос пропускается.
func RateLimitMiddleware(limiter Limiter, m *metrics.Sync, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ip:" + getClientIP(r)
			if userID, ok := handlers.GetUserID(r.Context()); ok {
				key = "user:" + userID
			}

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Error("Rate limiter unavailable, request allowed", "key", key, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				logger.Warn("Rate limit exceeded",
					"key", key,
					"method", r.Method,
					"path", r.URL.Path,
				)
				m.ObserveRateLimited()

				writeJSONError(w, http.StatusTooManyRequests,
					api.ErrorResponse{Error: "rate limit exceeded, please try again later"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP извлекает IP адрес клиента из запроса.
// Проверяет заголовки X-Forwarded-For и X-Real-IP для прокси.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Первый IP из списка - реальный клиент
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

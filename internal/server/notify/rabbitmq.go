package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange topic exchange для уведомлений об изменениях
const DefaultExchange = "meetsync.changes"

// confirmTimeout время ожидания подтверждения публикации брокером
const confirmTimeout = 5 * time.Second

// ErrBrokerUnavailable indicates that connection to broker is closed
var ErrBrokerUnavailable = errors.New("broker connection is closed")

// RabbitMQ публикует уведомления в topic exchange с подтверждениями издателя
type RabbitMQ struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	logger    *slog.Logger
	exchange  string
	mu        sync.Mutex
	closeOnce sync.Once
	healthy   atomic.Bool
}

var _ Notifier = (*RabbitMQ)(nil)

// NewRabbitMQ подключается к брокеру, объявляет exchange и включает Publisher Confirms
func NewRabbitMQ(url, exchange string, logger *slog.Logger) (*RabbitMQ, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	r := &RabbitMQ{
		conn:     conn,
		channel:  ch,
		logger:   logger,
		exchange: exchange,
	}
	r.healthy.Store(true)

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		if err, ok := <-closed; ok {
			r.healthy.Store(false)
			logger.Warn("RabbitMQ connection closed", "error", err)
		}
	}()

	logger.Info("Connected to RabbitMQ", "exchange", exchange)
	return r, nil
}

// Notify публикует уведомление и ждет подтверждения брокера
func (r *RabbitMQ) Notify(ctx context.Context, n ChangeNotification) error {
	if !r.healthy.Load() {
		return ErrBrokerUnavailable
	}

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	// Канал amqp не безопасен для конкурентной публикации с подтверждениями
	r.mu.Lock()
	deferred, err := r.channel.PublishWithDeferredConfirmWithContext(ctx,
		r.exchange,
		n.RoutingKey(),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    n.ChangeID,
			Timestamp:    n.AppliedAt,
			Body:         body,
		},
	)
	r.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, confirmTimeout)
	defer cancel()

	acked, err := deferred.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to wait for publisher confirm: %w", err)
	}
	if !acked {
		return fmt.Errorf("broker rejected notification %s", n.ChangeID)
	}
	return nil
}

// Close закрывает канал и соединение
func (r *RabbitMQ) Close() error {
	var err error
	r.closeOnce.Do(func() {
		r.healthy.Store(false)
		if cerr := r.channel.Close(); cerr != nil && !errors.Is(cerr, amqp.ErrClosed) {
			err = cerr
		}
		if cerr := r.conn.Close(); cerr != nil && !errors.Is(cerr, amqp.ErrClosed) && err == nil {
			err = cerr
		}
	})
	return err
}

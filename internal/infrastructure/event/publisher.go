package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Alessandra005/witcon2026/internal/domain/service"
	"github.com/Alessandra005/witcon2026/pkg/logger"
)

// DefaultExchange は参加者イベントのtopic exchange名です
const DefaultExchange = "witcon.attendees"

// Publisher は参加者イベントをRabbitMQへ発行します
// 接続先が未設定の場合は何も送らない
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	enabled  bool
}

// NewPublisher は新しいPublisherを作成します
func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if url == "" {
		logger.Warn(context.Background(), "AMQP_URL is empty, attendee events are disabled")
		return &Publisher{exchange: exchange}, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		enabled:  true,
	}, nil
}

// Enabled はイベント発行が有効かを返します
func (p *Publisher) Enabled() bool {
	return p.enabled
}

// Publish はイベントをイベント種別のルーティングキーで発行します
func (p *Publisher) Publish(ctx context.Context, event service.AttendeeEvent) error {
	if !p.enabled {
		logger.Debug(ctx, "event publishing disabled", "event_type", event.Type)
		return nil
	}

	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	logger.Debug(ctx, "attendee event published", "event_type", event.Type, "user_id", event.UserID)
	return nil
}

// Health はRabbitMQ接続が生きているかを確認します
func (p *Publisher) Health(_ context.Context) error {
	if !p.enabled {
		return nil
	}
	if p.conn.IsClosed() {
		return fmt.Errorf("rabbitmq connection is closed")
	}
	return nil
}

// Close はチャネルと接続を閉じます
func (p *Publisher) Close() error {
	if !p.enabled {
		return nil
	}
	if err := p.channel.Close(); err != nil {
		logger.Warn(context.Background(), "failed to close RabbitMQ channel", "error", err)
	}
	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("failed to close RabbitMQ connection: %w", err)
	}
	return nil
}

func newPublishing(event service.AttendeeEvent) (amqp.Publishing, error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Body:         body,
		Headers: amqp.Table{
			"event_type":  string(event.Type),
			"attendee_id": event.AttendeeID,
			"user_id":     event.UserID,
		},
	}, nil
}

var _ service.EventPublisher = (*Publisher)(nil)

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/vbonduro/homelist/internal/domain"
)

const publishTimeout = 5 * time.Second

// InventoryChangedEvent is the message body published on every inventory
// change.
type InventoryChangedEvent struct {
	EventID     string    `json:"eventId"`
	OccurredAt  time.Time `json:"occurredAt"`
	Count       int       `json:"count"`
	PropertyIDs []string  `json:"propertyIds"`
}

// NewInventoryChangedEvent summarises a snapshot.
func NewInventoryChangedEvent(properties []domain.Property, now time.Time) InventoryChangedEvent {
	ids := make([]string, len(properties))
	for i, p := range properties {
		ids[i] = p.ID
	}
	return InventoryChangedEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now.UTC(),
		Count:       len(properties),
		PropertyIDs: ids,
	}
}

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher is an inventory observer that announces each snapshot on a
// fanout exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	logger   *slog.Logger
	now      func() time.Time
}

// Dial connects to the broker at url and declares exchange as a durable
// fanout exchange.
func Dial(url, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %q: %w", exchange, err)
	}

	p := NewAMQPPublisher(ch, exchange, logger)
	p.conn = conn
	return p, nil
}

func NewAMQPPublisher(ch channel, exchange string, logger *slog.Logger) *AMQPPublisher {
	return &AMQPPublisher{ch: ch, exchange: exchange, logger: logger, now: time.Now}
}

func (p *AMQPPublisher) Update(properties []domain.Property) error {
	event := NewInventoryChangedEvent(properties, p.now())
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode inventory event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, p.exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Timestamp:    event.OccurredAt,
		Type:         "inventory.changed",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish inventory event: %w", err)
	}

	p.logger.Debug("inventory event published", "event_id", event.EventID, "count", event.Count)
	return nil
}

func (p *AMQPPublisher) Close() error {
	var firstErr error
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close channel: %w", err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close connection: %w", err)
		}
	}
	return firstErr
}

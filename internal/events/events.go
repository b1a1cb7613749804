// Package events публикует ленту изменений оборудования в RabbitMQ.
//
// Публикация выполняется по принципу fire-and-forget: ошибки возвращаются
// вызывающему для логирования, но не влияют на результат операции записи.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Типы событий; используются как routing key.
const (
	EquipmentCreated = "equipment.created"
	EquipmentUpdated = "equipment.updated"
	EquipmentDeleted = "equipment.deleted"
	MaintenanceAdded = "equipment.maintenance.added"
)

// Event — сообщение ленты изменений.
type Event struct {
	Type        string    `json:"type"`
	EquipmentID string    `json:"equipmentId"`
	Actor       string    `json:"actor"`
	OccurredAt  time.Time `json:"occurredAt"`
	Payload     any       `json:"payload,omitempty"`
}

// Channel — часть amqp.Channel, нужная для публикации.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher публикует события в topic exchange.
type Publisher struct {
	ch       Channel
	conn     *amqp.Connection
	exchange string
}

// NewPublisher создаёт Publisher поверх готового канала.
func NewPublisher(ch Channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange}
}

// Dial подключается к RabbitMQ, объявляет exchange и возвращает Publisher.
func Dial(url, exchange string, retries int, delay time.Duration) (*Publisher, error) {
	const op = "events.Dial"
	conn, err := Connect(url, retries, delay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := SetupChannel(conn, exchange)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Publisher{ch: ch, conn: conn, exchange: exchange}, nil
}

// Publish отправляет событие с routing key, равным типу события.
func (p *Publisher) Publish(ctx context.Context, e Event) error {
	const op = "events.Publish"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		p.exchange,
		e.Type,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    e.OccurredAt,
			Type:         e.Type,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал и соединение.
func (p *Publisher) Close() error {
	const op = "events.Close"
	if err := p.ch.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// Nop отбрасывает события. Используется, когда RabbitMQ не настроен.
type Nop struct{}

// Publish ничего не делает.
func (Nop) Publish(context.Context, Event) error { return nil }

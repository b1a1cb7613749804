package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/asset-maintenance/internal/lib/sl"
)

// DefaultConsumerWorkers — число одновременно обрабатываемых сообщений.
const DefaultConsumerWorkers = 10

// Source — часть amqp.Channel, нужная для чтения очереди.
type Source interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Handler обрабатывает событие ленты изменений.
type Handler func(ctx context.Context, e Event) error

// BindQueue объявляет durable-очередь и привязывает её к exchange
// по шаблону routing key (например, "equipment.#").
func BindQueue(ch *amqp.Channel, exchange, queue, pattern string) error {
	const op = "events.BindQueue"

	_, err := ch.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = ch.QueueBind(queue, pattern, exchange, false, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Consume запускает чтение очереди и возвращается сразу после подписки.
// Сообщения обрабатываются параллельно, не более workers одновременно.
// Неразбираемые сообщения отклоняются без возврата в очередь, ошибка
// handler возвращает сообщение в очередь. Чтение прекращается при отмене ctx;
// возвращаемая функция wait блокируется до завершения всех начатых обработчиков.
func Consume(ctx context.Context, src Source, queue string, workers int, handler Handler, log *slog.Logger) (func(), error) {
	const op = "events.Consume"

	delivery, err := src.Consume(
		queue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if workers < 1 {
		workers = DefaultConsumerWorkers
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				select {
				case sem <- struct{}{}:
				case <-ctx.Done():
					// Неподтверждённое сообщение брокер вернёт в очередь.
					if err := d.Nack(false, true); err != nil {
						log.Error("failed to nack message", sl.Err(err))
					}
					return
				}
				wg.Add(1)
				go func(d amqp.Delivery) {
					defer wg.Done()
					defer func() { <-sem }()
					handleDelivery(ctx, d, handler, log)
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return wg.Wait, nil
}

func handleDelivery(ctx context.Context, d amqp.Delivery, handler Handler, log *slog.Logger) {
	var e Event
	if err := json.Unmarshal(d.Body, &e); err != nil {
		log.Warn("dropping malformed event", slog.String("routing_key", d.RoutingKey), sl.Err(err))
		if err := d.Reject(false); err != nil {
			log.Error("failed to reject message", sl.Err(err))
		}
		return
	}
	if err := handler(ctx, e); err != nil {
		log.Warn("event handler failed, requeue", slog.String("type", e.Type), sl.Err(err))
		if err := d.Nack(false, true); err != nil {
			log.Error("failed to nack message", sl.Err(err))
		}
		return
	}
	if err := d.Ack(false); err != nil {
		log.Error("failed to ack message", sl.Err(err))
	}
}

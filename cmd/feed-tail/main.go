// Package main читает ленту изменений оборудования из RabbitMQ и пишет
// события в лог.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/asset-maintenance/internal/config"
	"github.com/magabrotheeeer/asset-maintenance/internal/events"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/sl"
)

var (
	queue   = flag.String("queue", "equipment.feed", "Queue bound to the equipment exchange")
	pattern = flag.String("pattern", "equipment.#", "Routing key pattern")
	workers = flag.Int("workers", events.DefaultConsumerWorkers, "Concurrent handlers")
)

func main() {
	flag.Parse()

	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)

	if cfg.RabbitMQ.URL == "" {
		logger.Error("rabbitmq url is not configured")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := events.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Retries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}()

	ch, err := events.SetupChannel(conn, cfg.RabbitMQ.Exchange)
	if err != nil {
		logger.Error("failed to open channel", sl.Err(err))
		os.Exit(1)
	}
	if err := events.BindQueue(ch, cfg.RabbitMQ.Exchange, *queue, *pattern); err != nil {
		logger.Error("failed to bind queue", sl.Err(err))
		os.Exit(1)
	}

	handler := func(_ context.Context, e events.Event) error {
		logger.Info("event",
			slog.String("type", e.Type),
			slog.String("equipment_id", e.EquipmentID),
			slog.String("actor", e.Actor),
			slog.Time("occurred_at", e.OccurredAt),
		)
		return nil
	}
	wait, err := events.Consume(ctx, ch, *queue, *workers, handler, logger)
	if err != nil {
		logger.Error("failed to start consumer", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("tailing equipment feed", slog.String("queue", *queue), slog.String("pattern", *pattern))
	<-ctx.Done()
	wait()
	logger.Info("feed tail stopped")
}

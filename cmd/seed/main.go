// Package main заполняет хранилище начальными данными оборудования
// из YAML-файла или случайным набором.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	assetmaintenance "github.com/magabrotheeeer/asset-maintenance/internal/app/asset-maintenance"
	"github.com/magabrotheeeer/asset-maintenance/internal/config"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/servicedate"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/sl"
	"github.com/magabrotheeeer/asset-maintenance/internal/models"
	"github.com/magabrotheeeer/asset-maintenance/internal/seed"
)

var (
	file   = flag.String("file", "", "Path to YAML fixture with equipment")
	random = flag.Int("random", 0, "Number of random equipment items to generate (75 when no file is given)")
	actor  = flag.String("actor", "seed", "Actor recorded in audit fields")
)

// options — параметры запуска из флагов.
type options struct {
	File   string
	Random int
	Actor  string
}

func main() {
	flag.Parse()

	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	created, total, err := run(ctx, cfg, logger, options{File: *file, Random: *random, Actor: *actor})
	if err != nil {
		logger.Error("seeding failed", slog.Int("created", created), sl.Err(err))
		stop()
		os.Exit(1)
	}
	logger.Info("seeding finished", slog.Int("created", created), slog.Int("total", total))
}

// run загружает данные и возвращает число созданных записей и размер набора.
// Ресурсы хранилища освобождаются до возврата.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts options) (int, int, error) {
	const op = "seed.run"

	var items []models.DummyEquipment
	switch {
	case opts.File != "":
		loaded, err := seed.LoadFile(opts.File)
		if err != nil {
			return 0, 0, fmt.Errorf("%s: %w", op, err)
		}
		items = loaded
	default:
		n := opts.Random
		if n <= 0 {
			n = seed.DefaultRandomCount
		}
		today := servicedate.Today(time.Now(), cfg.Maintenance.Location())
		seedValue := uint64(time.Now().UnixNano())
		items = seed.Random(n, today, rand.New(rand.NewPCG(seedValue, seedValue>>1)))
	}

	svc, closeFn, err := assetmaintenance.NewEquipmentService(ctx, cfg, logger)
	if err != nil {
		return 0, len(items), fmt.Errorf("%s: %w", op, err)
	}
	defer closeFn()

	created, err := seed.Load(ctx, svc, opts.Actor, items, logger)
	if err != nil {
		return created, len(items), fmt.Errorf("%s: %w", op, err)
	}
	return created, len(items), nil
}

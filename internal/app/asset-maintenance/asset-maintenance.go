// Package assetmaintenance собирает HTTP-приложение учёта оборудования:
// хранилище, кеш, публикацию событий, сервисы и маршруты.
package assetmaintenance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/asset-maintenance/internal/cache"
	"github.com/magabrotheeeer/asset-maintenance/internal/config"
	"github.com/magabrotheeeer/asset-maintenance/internal/events"
	"github.com/magabrotheeeer/asset-maintenance/internal/http/middlewarectx"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/jwt"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/sl"
	"github.com/magabrotheeeer/asset-maintenance/internal/migrations"
	analyticsservice "github.com/magabrotheeeer/asset-maintenance/internal/services/analytics"
	equipmentservice "github.com/magabrotheeeer/asset-maintenance/internal/services/equipment"
	"github.com/magabrotheeeer/asset-maintenance/internal/storage/memory"
	"github.com/magabrotheeeer/asset-maintenance/internal/storage/mongodb"
	"github.com/magabrotheeeer/asset-maintenance/internal/storage/repository"
)

// App — HTTP-приложение с его ресурсами.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	closers []func() error
}

// New создаёт приложение по конфигурации. Ресурсы, открытые до ошибки,
// освобождаются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.assetmaintenance.New"

	a := &App{logger: logger}

	equipmentService, err := a.equipmentService(ctx, cfg)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	analyticsService := analyticsservice.NewAnalyticsService(equipmentService, logger, analyticsservice.Settings{
		AtRiskLimit: cfg.AtRiskLimit,
		Location:    cfg.Maintenance.Location(),
	})

	var parser middlewarectx.TokenParser
	if cfg.JWTSecretKey != "" {
		parser = jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	} else {
		logger.Warn("jwt secret key is empty, authentication disabled")
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Services{
		Equipment:   equipmentService,
		Analytics:   analyticsService,
		TokenParser: parser,
		RateLimit:   cfg.RateLimit,
	})

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return a, nil
}

// NewEquipmentService собирает сервис оборудования без HTTP-сервера.
// Возвращаемая функция освобождает ресурсы.
func NewEquipmentService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*equipmentservice.Service, func(), error) {
	a := &App{logger: logger}
	svc, err := a.equipmentService(ctx, cfg)
	if err != nil {
		a.close()
		return nil, nil, err
	}
	return svc, a.close, nil
}

// equipmentService открывает хранилище, кеш и публикацию событий и
// собирает сервис оборудования.
func (a *App) equipmentService(ctx context.Context, cfg *config.Config) (*equipmentservice.Service, error) {
	repo, err := a.openStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	var c equipmentservice.Cache = cache.Nop{}
	if cfg.AddressRedis != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, redisCache.Close)
		c = redisCache
	} else {
		a.logger.Info("redis address is empty, cache disabled")
	}

	var publisher equipmentservice.Publisher = events.Nop{}
	if cfg.RabbitMQ.URL != "" {
		p, err := events.Dial(cfg.RabbitMQ.URL, cfg.Exchange, cfg.Retries, cfg.RetryDelay)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, p.Close)
		publisher = p
	} else {
		a.logger.Info("rabbitmq url is empty, change feed disabled")
	}

	return equipmentservice.NewEquipmentService(repo, c, publisher, a.logger, equipmentservice.Settings{
		Location: cfg.Maintenance.Location(),
		CacheTTL: cfg.CacheTTL,
	}), nil
}

// openStorage открывает хранилище выбранного драйвера.
func (a *App) openStorage(ctx context.Context, cfg config.Storage) (equipmentservice.Repository, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := repository.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
			return nil, err
		}
		if err := db.CheckDatabaseReady(ctx); err != nil {
			return nil, err
		}
		a.logger.Info("storage ready", slog.String("driver", cfg.Driver))
		return db, nil
	case config.DriverMongoDB:
		db, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return db.Close(closeCtx)
		})
		if err := db.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		a.logger.Info("storage ready", slog.String("driver", cfg.Driver))
		return db, nil
	case config.DriverMemory:
		a.logger.Warn("using in-memory storage, data is lost on restart")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Handler возвращает корневой обработчик приложения.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to release resource", sl.Err(err))
		}
	}
	a.closers = nil
}

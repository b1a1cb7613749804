// Package equipment содержит бизнес-логику учёта оборудования и журнала
// обслуживания: нормализацию и проверку входных данных, вычисление даты
// следующего обслуживания при записи, кеширование и публикацию событий.
package equipment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/asset-maintenance/internal/events"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/servicedate"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/sl"
	"github.com/magabrotheeeer/asset-maintenance/internal/maintenance"
	"github.com/magabrotheeeer/asset-maintenance/internal/metrics"
	"github.com/magabrotheeeer/asset-maintenance/internal/models"
)

// ErrInvalidInput возвращается, когда данные не проходят доменную проверку.
var ErrInvalidInput = errors.New("invalid input")

// Ключи кеша.
const (
	SnapshotKey    = "equipment:list"
	equipmentKeyFm = "equipment:%s"
)

// Repository определяет методы хранилища оборудования.
type Repository interface {
	// List возвращает всё оборудование.
	List(ctx context.Context) ([]*models.Equipment, error)
	// Get возвращает оборудование по ID или storage.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Equipment, error)
	// Create сохраняет оборудование и возвращает присвоенный ID.
	Create(ctx context.Context, e models.Equipment) (string, error)
	// Update полностью заменяет оборудование или возвращает storage.ErrNotFound.
	Update(ctx context.Context, id string, e models.Equipment) error
	// Delete удаляет оборудование с журналом или возвращает storage.ErrNotFound.
	Delete(ctx context.Context, id string) error
	// ListMaintenance возвращает журнал обслуживания, новые записи первыми.
	ListMaintenance(ctx context.Context, equipmentID string) ([]*models.MaintenanceRecord, error)
	// AddMaintenance добавляет запись журнала или возвращает storage.ErrNotFound.
	AddMaintenance(ctx context.Context, equipmentID string, r models.MaintenanceRecord) (string, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значения из кеша по ключам.
	Invalidate(keys ...string) error
}

// Publisher публикует события ленты изменений.
type Publisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// Settings — параметры сервиса.
type Settings struct {
	Location *time.Location   // часовой пояс для определения текущей даты
	CacheTTL time.Duration    // время жизни записей кеша
	Now      func() time.Time // источник текущего времени
}

// Service реализует бизнес-логику работы с оборудованием.
type Service struct {
	repo      Repository
	cache     Cache
	publisher Publisher
	log       *slog.Logger
	settings  Settings
}

// Detail — карточка оборудования с расчётом обслуживания.
type Detail struct {
	Entry    *models.Equipment    `json:"entry"`
	Schedule maintenance.Schedule `json:"schedule"`
}

// NewEquipmentService создаёт новый экземпляр Service.
func NewEquipmentService(repo Repository, cache Cache, publisher Publisher, log *slog.Logger, settings Settings) *Service {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}
	if settings.CacheTTL <= 0 {
		settings.CacheTTL = 5 * time.Minute
	}
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
		settings:  settings,
	}
}

// Today возвращает текущую календарную дату.
func (s *Service) Today() time.Time {
	return servicedate.Today(s.settings.Now(), s.settings.Location)
}

func equipmentKey(id string) string {
	return fmt.Sprintf(equipmentKeyFm, id)
}

// Snapshot возвращает всю коллекцию оборудования, используя кеш.
// Ошибка кеша не прерывает чтение из хранилища.
func (s *Service) Snapshot(ctx context.Context) ([]*models.Equipment, error) {
	const op = "services.equipment.Snapshot"

	var cached []*models.Equipment
	found, err := s.cache.Get(SnapshotKey, &cached)
	if err != nil {
		s.log.Warn("failed to read snapshot from cache", slog.String("key", SnapshotKey), sl.Err(err))
	}
	if found {
		metrics.SnapshotCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.SnapshotCacheTotal.WithLabelValues("miss").Inc()

	items, err := s.repo.List(ctx)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("snapshot").Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(SnapshotKey, items, s.settings.CacheTTL); err != nil {
		s.log.Warn("failed to cache snapshot", slog.String("key", SnapshotKey), sl.Err(err))
	}
	return items, nil
}

// Get возвращает оборудование по ID, используя кеш.
func (s *Service) Get(ctx context.Context, id string) (*models.Equipment, error) {
	const op = "services.equipment.Get"

	var cached *models.Equipment
	key := equipmentKey(id)
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	if found && cached != nil {
		return cached, nil
	}

	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(key, entry, s.settings.CacheTTL); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", key), sl.Err(err))
	}
	return entry, nil
}

// Detail возвращает карточку оборудования с расчётом обслуживания на сегодня.
func (s *Service) Detail(ctx context.Context, id string) (*Detail, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{
		Entry:    entry,
		Schedule: maintenance.BuildSchedule(s.Today(), entry),
	}, nil
}

// Create нормализует данные, вычисляет дату следующего обслуживания,
// если она не задана, и сохраняет оборудование.
func (s *Service) Create(ctx context.Context, actor string, req models.DummyEquipment) (string, error) {
	const op = "services.equipment.Create"

	now := s.settings.Now().UTC()
	entry, err := s.normalize(req)
	if err != nil {
		return "", err
	}
	entry.CreatedBy, entry.CreatedAt = actor, now
	entry.UpdatedBy, entry.UpdatedAt = actor, now

	id, err := s.repo.Create(ctx, entry)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("create").Inc()
		return "", fmt.Errorf("%s: %w", op, err)
	}
	entry.ID = id
	s.log.Info("created equipment", slog.String("id", id), slog.String("actor", actor))
	metrics.EquipmentWritesTotal.WithLabelValues("create").Inc()

	s.invalidate(SnapshotKey)
	s.publish(ctx, events.EquipmentCreated, id, actor, entry)
	return id, nil
}

// Update полностью заменяет данные оборудования. Не переданные
// необязательные поля очищаются, дата следующего обслуживания
// вычисляется заново, если не задана явно.
func (s *Service) Update(ctx context.Context, actor, id string, req models.DummyEquipment) error {
	const op = "services.equipment.Update"

	entry, err := s.normalize(req)
	if err != nil {
		return err
	}
	entry.ID = id
	entry.UpdatedBy, entry.UpdatedAt = actor, s.settings.Now().UTC()

	if err := s.repo.Update(ctx, id, entry); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("update").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("updated equipment", slog.String("id", id), slog.String("actor", actor))
	metrics.EquipmentWritesTotal.WithLabelValues("update").Inc()

	s.invalidate(SnapshotKey, equipmentKey(id))
	s.publish(ctx, events.EquipmentUpdated, id, actor, entry)
	return nil
}

// Delete удаляет оборудование вместе с журналом обслуживания.
func (s *Service) Delete(ctx context.Context, actor, id string) error {
	const op = "services.equipment.Delete"

	if err := s.repo.Delete(ctx, id); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("delete").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("deleted equipment", slog.String("id", id), slog.String("actor", actor))
	metrics.EquipmentWritesTotal.WithLabelValues("delete").Inc()

	s.invalidate(SnapshotKey, equipmentKey(id))
	s.publish(ctx, events.EquipmentDeleted, id, actor, nil)
	return nil
}

func (s *Service) invalidate(keys ...string) {
	if err := s.cache.Invalidate(keys...); err != nil {
		s.log.Warn("failed to remove from cache", slog.Any("keys", keys), sl.Err(err))
	}
}

func (s *Service) publish(ctx context.Context, eventType, id, actor string, payload any) {
	err := s.publisher.Publish(ctx, events.Event{
		Type:        eventType,
		EquipmentID: id,
		Actor:       actor,
		OccurredAt:  s.settings.Now().UTC(),
		Payload:     payload,
	})
	if err != nil {
		s.log.Warn("failed to publish event", slog.String("type", eventType), slog.String("id", id), sl.Err(err))
	}
}

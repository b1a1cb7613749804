// Package analytics загружает снимок коллекции оборудования и строит по нему
// дашборд и отфильтрованную аналитику.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	engine "github.com/magabrotheeeer/asset-maintenance/internal/analytics"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/servicedate"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/sl"
	"github.com/magabrotheeeer/asset-maintenance/internal/metrics"
	"github.com/magabrotheeeer/asset-maintenance/internal/models"
)

// ErrLoadFailed возвращается, когда снимок коллекции не удалось загрузить.
// Пустая коллекция ошибкой не является.
var ErrLoadFailed = errors.New("load failed")

// SnapshotLoader возвращает всю коллекцию оборудования.
type SnapshotLoader interface {
	Snapshot(ctx context.Context) ([]*models.Equipment, error)
}

// Settings — параметры сервиса.
type Settings struct {
	AtRiskLimit int
	Location    *time.Location
	Now         func() time.Time
}

// Service строит дашборд и аналитику.
type Service struct {
	loader   SnapshotLoader
	log      *slog.Logger
	settings Settings
}

// NewAnalyticsService создаёт новый экземпляр Service.
func NewAnalyticsService(loader SnapshotLoader, log *slog.Logger, settings Settings) *Service {
	if settings.AtRiskLimit <= 0 {
		settings.AtRiskLimit = engine.DefaultAtRiskLimit
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}
	return &Service{loader: loader, log: log, settings: settings}
}

// today возвращает дату расчёта: asOf, если задана, иначе текущую дату.
func (s *Service) today(asOf time.Time) time.Time {
	if !asOf.IsZero() {
		return servicedate.Today(asOf, time.UTC)
	}
	return servicedate.Today(s.settings.Now(), s.settings.Location)
}

func (s *Service) load(ctx context.Context, op string) ([]*models.Equipment, error) {
	items, err := s.loader.Snapshot(ctx)
	if err != nil {
		s.log.Error("failed to load snapshot", slog.String("op", op), sl.Err(err))
		metrics.OperationErrorsTotal.WithLabelValues("load_snapshot").Inc()
		return nil, fmt.Errorf("%s: %w: %w", op, ErrLoadFailed, err)
	}
	return items, nil
}

// Dashboard строит сводку по всей коллекции на дату asOf
// (нулевое значение означает сегодня).
func (s *Service) Dashboard(ctx context.Context, asOf time.Time) (engine.Dashboard, error) {
	const op = "services.analytics.Dashboard"

	items, err := s.load(ctx, op)
	if err != nil {
		return engine.Dashboard{}, err
	}
	d := engine.BuildDashboard(items, s.today(asOf), s.settings.AtRiskLimit)
	if asOf.IsZero() {
		metrics.AtRiskEquipment.WithLabelValues("overdue").Set(float64(d.Overdue))
		metrics.AtRiskEquipment.WithLabelValues("due_within_7").Set(float64(d.DueWithin7))
		metrics.AtRiskEquipment.WithLabelValues("due_within_30").Set(float64(d.DueWithin30))
	}
	return d, nil
}

// Analytics строит аналитику по выборке, заданной фильтром, на дату asOf.
func (s *Service) Analytics(ctx context.Context, f engine.Filter, asOf time.Time) (engine.Report, error) {
	const op = "services.analytics.Analytics"

	items, err := s.load(ctx, op)
	if err != nil {
		return engine.Report{}, err
	}
	return engine.BuildReport(items, s.today(asOf), f, s.settings.AtRiskLimit), nil
}

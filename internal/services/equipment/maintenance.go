package equipment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/asset-maintenance/internal/events"
	"github.com/magabrotheeeer/asset-maintenance/internal/metrics"
	"github.com/magabrotheeeer/asset-maintenance/internal/models"
)

// List возвращает оборудование из снимка коллекции с учётом фильтра
// и общее число найденных записей до пагинации.
func (s *Service) List(ctx context.Context, f models.EquipmentFilter) ([]*models.Equipment, int, error) {
	const op = "services.equipment.List"

	items, err := s.Snapshot(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	res := make([]*models.Equipment, 0, len(items))
	for _, e := range items {
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(e.Name), query) &&
			!strings.Contains(strings.ToLower(e.SerialNumber), query) {
			continue
		}
		res = append(res, e)
	}

	total := len(res)
	if f.Offset > 0 {
		if f.Offset >= len(res) {
			return []*models.Equipment{}, total, nil
		}
		res = res[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(res) {
		res = res[:f.Limit]
	}
	return res, total, nil
}

// ListMaintenance возвращает журнал обслуживания оборудования.
// Для неизвестного оборудования возвращается storage.ErrNotFound.
func (s *Service) ListMaintenance(ctx context.Context, id string) ([]*models.MaintenanceRecord, error) {
	const op = "services.equipment.ListMaintenance"

	if _, err := s.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	records, err := s.repo.ListMaintenance(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if records == nil {
		records = []*models.MaintenanceRecord{}
	}
	return records, nil
}

// AddMaintenance добавляет запись в журнал обслуживания.
// Дата последнего обслуживания оборудования при этом не меняется.
func (s *Service) AddMaintenance(ctx context.Context, actor, id string, req models.DummyMaintenance) (string, error) {
	const op = "services.equipment.AddMaintenance"

	date, err := requiredDate("date", req.Date, s.Today())
	if err != nil {
		return "", err
	}
	record := models.MaintenanceRecord{
		EquipmentID: id,
		Date:        date,
		Notes:       strings.TrimSpace(req.Notes),
		CreatedBy:   actor,
		CreatedAt:   s.settings.Now().UTC(),
	}

	recordID, err := s.repo.AddMaintenance(ctx, id, record)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("add_maintenance").Inc()
		return "", fmt.Errorf("%s: %w", op, err)
	}
	record.ID = recordID
	s.log.Info("added maintenance record",
		slog.String("equipment_id", id),
		slog.String("id", recordID),
		slog.String("actor", actor),
	)
	metrics.EquipmentWritesTotal.WithLabelValues("add_maintenance").Inc()

	s.publish(ctx, events.MaintenanceAdded, id, actor, record)
	return recordID, nil
}

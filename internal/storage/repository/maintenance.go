package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/asset-maintenance/internal/models"
	"github.com/magabrotheeeer/asset-maintenance/internal/storage"
)

// ListMaintenance возвращает журнал обслуживания оборудования,
// новые записи первыми.
func (s *Storage) ListMaintenance(ctx context.Context, equipmentID string) ([]*models.MaintenanceRecord, error) {
	const op = "storage.repository.ListMaintenance"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result := make([]*models.MaintenanceRecord, 0)
	if !validID(equipmentID) {
		return result, nil
	}

	query := `SELECT id, equipment_id, date, notes, created_by, created_at
			  FROM maintenance_logs
			  WHERE equipment_id = $1
			  ORDER BY date DESC, created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			r    models.MaintenanceRecord
			date sql.NullTime
		)
		if err := rows.Scan(&r.ID, &r.EquipmentID, &date, &r.Notes, &r.CreatedBy, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		r.Date = storage.DateString(date)
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// AddMaintenance добавляет запись в журнал обслуживания и возвращает её ID.
// Для несуществующего оборудования возвращает storage.ErrNotFound.
func (s *Storage) AddMaintenance(ctx context.Context, equipmentID string, r models.MaintenanceRecord) (string, error) {
	const op = "storage.repository.AddMaintenance"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if !validID(equipmentID) {
		return "", fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	id := uuid.New().String()
	query := `INSERT INTO maintenance_logs (id, equipment_id, date, notes, created_by, created_at)
			  SELECT $1::uuid, $2::uuid, $3::date, $4::text, $5::text, $6::timestamptz
			  WHERE EXISTS (SELECT 1 FROM equipment WHERE id = $2::uuid)`
	result, err := s.DB.ExecContext(ctx, query,
		id, equipmentID, storage.NullDate(r.Date), r.Notes, r.CreatedBy, r.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := checkAffected(op, result); err != nil {
		return "", err
	}
	return id, nil
}

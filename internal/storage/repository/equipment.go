package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/asset-maintenance/internal/models"
	"github.com/magabrotheeeer/asset-maintenance/internal/storage"
)

const equipmentColumns = `id, name, serial_number, status, purchase_date, last_service_date,
	next_service_date, next_service_date_manual, service_interval_days, location, owner,
	created_by, created_at, updated_by, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEquipment(row scanner) (*models.Equipment, error) {
	var (
		e                    models.Equipment
		purchase, last, next sql.NullTime
	)
	if err := row.Scan(&e.ID, &e.Name, &e.SerialNumber, &e.Status, &purchase, &last,
		&next, &e.NextServiceDateManual, &e.ServiceIntervalDays, &e.Location, &e.Owner,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedBy, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.PurchaseDate = storage.DateString(purchase)
	e.LastServiceDate = storage.DateString(last)
	e.NextServiceDate = storage.DateString(next)
	return &e, nil
}

// validID сообщает, может ли id быть ключом записи. Некорректный UUID
// трактуется как отсутствующая запись.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// List возвращает все единицы оборудования, новые первыми.
func (s *Storage) List(ctx context.Context) ([]*models.Equipment, error) {
	const op = "storage.repository.List"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + equipmentColumns + `
			  FROM equipment
			  ORDER BY created_at DESC, id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Equipment, 0)
	for rows.Next() {
		item, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Get возвращает единицу оборудования по ID.
func (s *Storage) Get(ctx context.Context, id string) (*models.Equipment, error) {
	const op = "storage.repository.Get"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if !validID(id) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	item, err := scanEquipment(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// Create вставляет новую единицу оборудования и возвращает её ID.
func (s *Storage) Create(ctx context.Context, e models.Equipment) (string, error) {
	const op = "storage.repository.Create"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	id := uuid.New().String()
	query := `INSERT INTO equipment (` + equipmentColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := s.DB.ExecContext(ctx, query,
		id, e.Name, e.SerialNumber, string(e.Status), storage.NullDate(e.PurchaseDate),
		storage.NullDate(e.LastServiceDate), storage.NullDate(e.NextServiceDate),
		e.NextServiceDateManual, e.ServiceIntervalDays, e.Location, e.Owner,
		e.CreatedBy, e.CreatedAt, e.UpdatedBy, e.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Update полностью заменяет данные единицы оборудования. Поля создания не меняются.
func (s *Storage) Update(ctx context.Context, id string, e models.Equipment) error {
	const op = "storage.repository.Update"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if !validID(id) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	query := `UPDATE equipment
			  SET name = $1, serial_number = $2, status = $3, purchase_date = $4,
			      last_service_date = $5, next_service_date = $6, next_service_date_manual = $7,
			      service_interval_days = $8, location = $9, owner = $10,
			      updated_by = $11, updated_at = $12
			  WHERE id = $13`
	result, err := s.DB.ExecContext(ctx, query,
		e.Name, e.SerialNumber, string(e.Status), storage.NullDate(e.PurchaseDate),
		storage.NullDate(e.LastServiceDate), storage.NullDate(e.NextServiceDate),
		e.NextServiceDateManual, e.ServiceIntervalDays, e.Location, e.Owner,
		e.UpdatedBy, e.UpdatedAt, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, result)
}

// Delete удаляет единицу оборудования вместе с журналом обслуживания.
func (s *Storage) Delete(ctx context.Context, id string) error {
	const op = "storage.repository.Delete"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if !validID(id) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, result)
}

func checkAffected(op string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

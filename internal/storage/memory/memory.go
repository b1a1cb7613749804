// Package memory реализует хранилище оборудования в памяти процесса.
// Используется для локального запуска и тестов.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/asset-maintenance/internal/models"
	"github.com/magabrotheeeer/asset-maintenance/internal/storage"
)

// Storage хранит записи в памяти. Безопасен для конкурентного использования.
type Storage struct {
	mu          sync.RWMutex
	order       []string
	equipment   map[string]models.Equipment
	maintenance map[string][]models.MaintenanceRecord
}

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{
		equipment:   make(map[string]models.Equipment),
		maintenance: make(map[string][]models.MaintenanceRecord),
	}
}

// List возвращает копии всех записей, новые первыми.
func (s *Storage) List(ctx context.Context) ([]*models.Equipment, error) {
	const op = "storage.memory.List"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Equipment, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		e := s.equipment[s.order[i]]
		result = append(result, &e)
	}
	return result, nil
}

// Get возвращает копию записи по ID.
func (s *Storage) Get(ctx context.Context, id string) (*models.Equipment, error) {
	const op = "storage.memory.Get"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.equipment[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return &e, nil
}

// Create сохраняет запись и возвращает присвоенный ID.
func (s *Storage) Create(ctx context.Context, e models.Equipment) (string, error) {
	const op = "storage.memory.Create"
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.New().String()
	s.equipment[e.ID] = e
	s.order = append(s.order, e.ID)
	return e.ID, nil
}

// Update заменяет запись целиком, сохраняя ID и поля создания.
func (s *Storage) Update(ctx context.Context, id string, e models.Equipment) error {
	const op = "storage.memory.Update"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.equipment[id]
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	e.ID = id
	e.CreatedBy = old.CreatedBy
	e.CreatedAt = old.CreatedAt
	s.equipment[id] = e
	return nil
}

// Delete удаляет запись и её журнал обслуживания.
func (s *Storage) Delete(ctx context.Context, id string) error {
	const op = "storage.memory.Delete"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.equipment[id]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	delete(s.equipment, id)
	delete(s.maintenance, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListMaintenance возвращает журнал обслуживания по дате по убыванию,
// при равенстве дат — по времени создания по убыванию.
func (s *Storage) ListMaintenance(ctx context.Context, equipmentID string) ([]*models.MaintenanceRecord, error) {
	const op = "storage.memory.ListMaintenance"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	records := s.maintenance[equipmentID]
	result := make([]*models.MaintenanceRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		result = append(result, &r)
	}
	s.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date > result[j].Date
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// AddMaintenance добавляет запись в журнал существующего оборудования.
func (s *Storage) AddMaintenance(ctx context.Context, equipmentID string, r models.MaintenanceRecord) (string, error) {
	const op = "storage.memory.AddMaintenance"
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.equipment[equipmentID]; !ok {
		return "", fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	r.ID = uuid.New().String()
	r.EquipmentID = equipmentID
	s.maintenance[equipmentID] = append(s.maintenance[equipmentID], r)
	return r.ID, nil
}

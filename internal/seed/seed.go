// Package seed готовит начальные данные оборудования: из YAML-файла
// или случайным набором для демонстрации.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/magabrotheeeer/asset-maintenance/internal/lib/servicedate"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/sl"
	"github.com/magabrotheeeer/asset-maintenance/internal/models"
)

// DefaultRandomCount — размер случайного набора по умолчанию.
const DefaultRandomCount = 75

var (
	locations = []string{"Tampa DC", "Orlando Site", "Brandon Hub", "St. Pete Ops"}
	owners    = []string{"Operations", "Maintenance", "Facilities", "Asset Team"}
)

// Fixture — формат YAML-файла с начальными данными.
type Fixture struct {
	Equipment []models.DummyEquipment `yaml:"equipment"`
}

// Creator сохраняет оборудование.
type Creator interface {
	Create(ctx context.Context, actor string, req models.DummyEquipment) (string, error)
}

// Parse читает YAML с начальными данными.
func Parse(r io.Reader) ([]models.DummyEquipment, error) {
	const op = "seed.Parse"

	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return []models.DummyEquipment{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return f.Equipment, nil
}

// LoadFile читает YAML-файл с начальными данными.
func LoadFile(path string) ([]models.DummyEquipment, error) {
	const op = "seed.LoadFile"

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer file.Close()

	items, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// Random генерирует n единиц оборудования. Даты покупки и последнего
// обслуживания не позже today, дата следующего обслуживания лежит
// в пределах полугода до и года после today.
func Random(n int, today time.Time, rnd *rand.Rand) []models.DummyEquipment {
	items := make([]models.DummyEquipment, 0, n)
	for i := 0; i < n; i++ {
		status := models.StatusActive
		switch {
		case i%3 == 0:
			status = models.StatusMaintenance
		case i%2 == 0:
			status = models.StatusInactive
		}

		items = append(items, models.DummyEquipment{
			Name:            fmt.Sprintf("Asset %d - Unit %04d", i+1, i+1),
			SerialNumber:    fmt.Sprintf("ASSET-%04d", 1000+i),
			Status:          string(status),
			PurchaseDate:    randomDate(rnd, today.AddDate(-3, 0, 0), today.AddDate(0, -6, 0)),
			LastServiceDate: randomDate(rnd, today.AddDate(-1, -6, 0), today),
			NextServiceDate: randomDate(rnd, today.AddDate(0, -6, 0), today.AddDate(1, 0, 0)),
			Location:        locations[rnd.IntN(len(locations))],
			Owner:           owners[rnd.IntN(len(owners))],
		})
	}
	return items
}

func randomDate(rnd *rand.Rand, from, to time.Time) string {
	days := servicedate.DaysBetween(from, to)
	if days <= 0 {
		return servicedate.Format(from)
	}
	return servicedate.Format(servicedate.AddDays(from, rnd.IntN(days+1)))
}

// Load сохраняет items и возвращает число созданных записей.
// Записи с ошибками пропускаются и логируются.
func Load(ctx context.Context, c Creator, actor string, items []models.DummyEquipment, log *slog.Logger) (int, error) {
	const op = "seed.Load"

	created := 0
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return created, fmt.Errorf("%s: %w", op, err)
		}
		id, err := c.Create(ctx, actor, item)
		if err != nil {
			log.Warn("skip equipment", slog.Int("index", i), slog.String("name", item.Name), sl.Err(err))
			continue
		}
		log.Debug("equipment created", slog.String("id", id))
		created++
	}
	return created, nil
}

package equipment

import (
	"fmt"
	"strings"
	"time"

	"github.com/magabrotheeeer/asset-maintenance/internal/lib/servicedate"
	"github.com/magabrotheeeer/asset-maintenance/internal/models"
)

func invalidInput(field, reason string) error {
	return fmt.Errorf("%w: field %s %s", ErrInvalidInput, field, reason)
}

// normalize приводит DTO к модели: обрезает пробелы, нормализует даты,
// проверяет, что даты покупки и последнего обслуживания не в будущем,
// и вычисляет дату следующего обслуживания, если она не задана.
func (s *Service) normalize(req models.DummyEquipment) (models.Equipment, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Equipment{}, invalidInput("name", "is required")
	}
	status := models.Status(strings.TrimSpace(req.Status))
	if !status.Valid() {
		return models.Equipment{}, invalidInput("status", "must be one of: active maintenance inactive")
	}
	if req.ServiceIntervalDays < 0 {
		return models.Equipment{}, invalidInput("serviceIntervalDays", "must be positive")
	}

	today := s.Today()
	purchase, err := requiredDate("purchaseDate", req.PurchaseDate, today)
	if err != nil {
		return models.Equipment{}, err
	}
	last, err := requiredDate("lastServiceDate", req.LastServiceDate, today)
	if err != nil {
		return models.Equipment{}, err
	}

	entry := models.Equipment{
		Name:                name,
		SerialNumber:        strings.TrimSpace(req.SerialNumber),
		Status:              status,
		PurchaseDate:        purchase,
		LastServiceDate:     last,
		ServiceIntervalDays: servicedate.Interval(req.ServiceIntervalDays),
		Location:            strings.TrimSpace(req.Location),
		Owner:               strings.TrimSpace(req.Owner),
	}

	if next := strings.TrimSpace(req.NextServiceDate); next != "" {
		t, ok := servicedate.Parse(next)
		if !ok {
			return models.Equipment{}, invalidInput("nextServiceDate", "must be a date in format yyyy-mm-dd")
		}
		entry.NextServiceDate = servicedate.Format(t)
		entry.NextServiceDateManual = true
		return entry, nil
	}

	if t, source := servicedate.DeriveNext("", entry.LastServiceDate, entry.ServiceIntervalDays); source == servicedate.SourceDerived {
		entry.NextServiceDate = servicedate.Format(t)
	}
	return entry, nil
}

func requiredDate(field, value string, today time.Time) (string, error) {
	t, ok := servicedate.Parse(value)
	if !ok {
		return "", invalidInput(field, "must be a date in format yyyy-mm-dd")
	}
	if t.After(today) {
		return "", invalidInput(field, "must not be in the future")
	}
	return servicedate.Format(t), nil
}

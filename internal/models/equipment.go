// Package models содержит доменные структуры учёта оборудования и журнала
// обслуживания, а также DTO для приёма данных из JSON-запросов.
package models

import "time"

// Status — эксплуатационный статус единицы оборудования.
type Status string

const (
	// StatusActive — оборудование в эксплуатации.
	StatusActive Status = "active"
	// StatusMaintenance — оборудование на обслуживании.
	StatusMaintenance Status = "maintenance"
	// StatusInactive — оборудование выведено из эксплуатации.
	StatusInactive Status = "inactive"
)

// Statuses возвращает все статусы в фиксированном порядке отображения.
func Statuses() []Status {
	return []Status{StatusActive, StatusMaintenance, StatusInactive}
}

// Label возвращает человеко-читаемое название статуса.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "In Service"
	case StatusMaintenance:
		return "Maintenance"
	case StatusInactive:
		return "Out of Service"
	default:
		return string(s)
	}
}

// Valid сообщает, является ли статус одним из допустимых.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusMaintenance, StatusInactive:
		return true
	}
	return false
}

// Equipment — основная модель единицы оборудования.
// Даты хранятся строками в формате yyyy-mm-dd; пустая строка означает
// отсутствие значения. NextServiceDateManual показывает, что дата
// следующего обслуживания задана пользователем, а не вычислена.
type Equipment struct {
	ID                    string    `json:"id" bson:"_id"`
	Name                  string    `json:"name" bson:"name"`
	SerialNumber          string    `json:"serialNumber" bson:"serial_number"`
	Status                Status    `json:"status" bson:"status"`
	PurchaseDate          string    `json:"purchaseDate" bson:"purchase_date"`
	LastServiceDate       string    `json:"lastServiceDate" bson:"last_service_date"`
	NextServiceDate       string    `json:"nextServiceDate,omitempty" bson:"next_service_date,omitempty"`
	NextServiceDateManual bool      `json:"nextServiceDateManual" bson:"next_service_date_manual"`
	ServiceIntervalDays   int       `json:"serviceIntervalDays" bson:"service_interval_days"`
	Location              string    `json:"location,omitempty" bson:"location,omitempty"`
	Owner                 string    `json:"owner,omitempty" bson:"owner,omitempty"`
	CreatedBy             string    `json:"createdBy" bson:"created_by"`
	CreatedAt             time.Time `json:"createdAt" bson:"created_at"`
	UpdatedBy             string    `json:"updatedBy" bson:"updated_by"`
	UpdatedAt             time.Time `json:"updatedAt" bson:"updated_at"`
}

// MaintenanceRecord — запись журнала обслуживания. Записи только добавляются.
type MaintenanceRecord struct {
	ID          string    `json:"id" bson:"_id"`
	EquipmentID string    `json:"equipmentId" bson:"equipment_id"`
	Date        string    `json:"date" bson:"date"`
	Notes       string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedBy   string    `json:"createdBy" bson:"created_by"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

// DummyEquipment используется для приёма данных оборудования из JSON-запроса
// до валидации и нормализации в Equipment.
type DummyEquipment struct {
	Name                string `json:"name" yaml:"name" validate:"required"`
	SerialNumber        string `json:"serialNumber" yaml:"serialNumber"`
	Status              string `json:"status" yaml:"status" validate:"required,oneof=active maintenance inactive"`
	PurchaseDate        string `json:"purchaseDate" yaml:"purchaseDate" validate:"required,isodate"`
	LastServiceDate     string `json:"lastServiceDate" yaml:"lastServiceDate" validate:"required,isodate"`
	NextServiceDate     string `json:"nextServiceDate,omitempty" yaml:"nextServiceDate" validate:"omitempty,isodate"`
	ServiceIntervalDays int    `json:"serviceIntervalDays,omitempty" yaml:"serviceIntervalDays" validate:"omitempty,gte=1"`
	Location            string `json:"location,omitempty" yaml:"location"`
	Owner               string `json:"owner,omitempty" yaml:"owner"`
}

// DummyMaintenance используется для приёма записи журнала обслуживания.
type DummyMaintenance struct {
	Date  string `json:"date" validate:"required,isodate"`
	Notes string `json:"notes,omitempty"`
}

// EquipmentFilter — параметры выборки списка оборудования.
type EquipmentFilter struct {
	Status Status // пустой статус означает все
	Query  string // подстрока названия или серийного номера
	Limit  int
	Offset int
}

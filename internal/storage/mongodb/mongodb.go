// Package mongodb реализует хранилище оборудования и журнала обслуживания
// на основе MongoDB.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/asset-maintenance/internal/models"
	"github.com/magabrotheeeer/asset-maintenance/internal/storage"
)

const (
	equipmentCollection   = "equipment"
	maintenanceCollection = "maintenance_logs"
)

// Storage хранит оборудование в коллекции equipment, а журнал
// обслуживания — в коллекции maintenance_logs.
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
}

// New подключается к MongoDB и проверяет соединение.
func New(ctx context.Context, uri, dbName string) (*Storage, error) {
	const op = "storage.mongodb.New"

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect to mongodb: %w", op, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%s: failed to ping mongodb: %w", op, err)
	}

	return &Storage{client: client, db: client.Database(dbName)}, nil
}

// NewWithDatabase создаёт хранилище поверх уже открытой базы.
func NewWithDatabase(db *mongo.Database) *Storage {
	return &Storage{client: db.Client(), db: db}
}

// EnsureIndexes создаёт индексы для сортировки списков.
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	const op = "storage.mongodb.EnsureIndexes"
	_, err := s.db.Collection(equipmentCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = s.db.Collection(maintenanceCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "equipment_id", Value: 1},
			{Key: "date", Value: -1},
			{Key: "created_at", Value: -1},
		},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение с MongoDB.
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// List возвращает всё оборудование, новые записи первыми.
func (s *Storage) List(ctx context.Context) ([]*models.Equipment, error) {
	const op = "storage.mongodb.List"

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := s.db.Collection(equipmentCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*models.Equipment, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Get возвращает оборудование по ID.
func (s *Storage) Get(ctx context.Context, id string) (*models.Equipment, error) {
	const op = "storage.mongodb.Get"

	var e models.Equipment
	err := s.db.Collection(equipmentCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &e, nil
}

// Create сохраняет оборудование и возвращает присвоенный ID.
func (s *Storage) Create(ctx context.Context, e models.Equipment) (string, error) {
	const op = "storage.mongodb.Create"

	e.ID = uuid.New().String()
	if _, err := s.db.Collection(equipmentCollection).InsertOne(ctx, e); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return e.ID, nil
}

// Update полностью заменяет данные оборудования, кроме полей создания.
func (s *Storage) Update(ctx context.Context, id string, e models.Equipment) error {
	const op = "storage.mongodb.Update"

	update := updateDocument(e)
	res, err := s.db.Collection(equipmentCollection).UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

// updateDocument строит $set для заполненных полей и $unset для пустых
// необязательных, чтобы документ совпадал с вставленным через Create.
func updateDocument(e models.Equipment) bson.D {
	set := bson.D{
		{Key: "name", Value: e.Name},
		{Key: "serial_number", Value: e.SerialNumber},
		{Key: "status", Value: string(e.Status)},
		{Key: "purchase_date", Value: e.PurchaseDate},
		{Key: "last_service_date", Value: e.LastServiceDate},
		{Key: "next_service_date_manual", Value: e.NextServiceDateManual},
		{Key: "service_interval_days", Value: e.ServiceIntervalDays},
		{Key: "updated_by", Value: e.UpdatedBy},
		{Key: "updated_at", Value: e.UpdatedAt},
	}
	unset := bson.D{}
	for _, f := range []struct {
		key   string
		value string
	}{
		{"next_service_date", e.NextServiceDate},
		{"location", e.Location},
		{"owner", e.Owner},
	} {
		if f.value == "" {
			unset = append(unset, bson.E{Key: f.key, Value: ""})
			continue
		}
		set = append(set, bson.E{Key: f.key, Value: f.value})
	}

	update := bson.D{{Key: "$set", Value: set}}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}
	return update
}

// Delete удаляет оборудование и его журнал обслуживания.
func (s *Storage) Delete(ctx context.Context, id string) error {
	const op = "storage.mongodb.Delete"

	res, err := s.db.Collection(equipmentCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if _, err := s.db.Collection(maintenanceCollection).DeleteMany(ctx, bson.D{{Key: "equipment_id", Value: id}}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListMaintenance возвращает журнал обслуживания, новые записи первыми.
func (s *Storage) ListMaintenance(ctx context.Context, equipmentID string) ([]*models.MaintenanceRecord, error) {
	const op = "storage.mongodb.ListMaintenance"

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})
	cursor, err := s.db.Collection(maintenanceCollection).Find(ctx, bson.D{{Key: "equipment_id", Value: equipmentID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*models.MaintenanceRecord, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// AddMaintenance добавляет запись журнала для существующего оборудования.
func (s *Storage) AddMaintenance(ctx context.Context, equipmentID string, r models.MaintenanceRecord) (string, error) {
	const op = "storage.mongodb.AddMaintenance"

	n, err := s.db.Collection(equipmentCollection).CountDocuments(ctx, bson.D{{Key: "_id", Value: equipmentID}})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return "", fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	r.ID = uuid.New().String()
	r.EquipmentID = equipmentID
	if _, err := s.db.Collection(maintenanceCollection).InsertOne(ctx, r); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return r.ID, nil
}

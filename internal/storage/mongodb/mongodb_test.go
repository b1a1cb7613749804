package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/magabrotheeeer/asset-maintenance/internal/models"
	"github.com/magabrotheeeer/asset-maintenance/internal/storage"
)

func ns(mt *mtest.T, coll string) string {
	return mt.DB.Name() + "." + coll
}

func equipmentDoc(id, name string, created time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "serial_number", Value: "SN-" + id},
		{Key: "status", Value: "active"},
		{Key: "purchase_date", Value: "2024-01-01"},
		{Key: "last_service_date", Value: "2025-01-01"},
		{Key: "next_service_date_manual", Value: false},
		{Key: "service_interval_days", Value: int32(180)},
		{Key: "created_by", Value: "alice"},
		{Key: "created_at", Value: primitive.NewDateTimeFromTime(created)},
	}
}

func TestStorage(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	mt.Run("create возвращает новый id", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := s.Create(ctx, models.Equipment{Name: "pump", Status: models.StatusActive})
		require.NoError(mt, err)
		assert.NotEmpty(mt, id)
	})

	mt.Run("get найденной записи", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, equipmentCollection), mtest.FirstBatch,
			equipmentDoc("a1", "pump", created)))

		got, err := s.Get(ctx, "a1")
		require.NoError(mt, err)
		assert.Equal(mt, "a1", got.ID)
		assert.Equal(mt, "pump", got.Name)
		assert.Equal(mt, models.StatusActive, got.Status)
		assert.Equal(mt, 180, got.ServiceIntervalDays)
		assert.Empty(mt, got.NextServiceDate)
		assert.True(mt, created.Equal(got.CreatedAt))
	})

	mt.Run("get отсутствующей записи", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, equipmentCollection), mtest.FirstBatch))

		_, err := s.Get(ctx, "missing")
		require.ErrorIs(mt, err, storage.ErrNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, equipmentCollection), mtest.FirstBatch,
			equipmentDoc("b", "second", created.Add(time.Hour)),
			equipmentDoc("a", "first", created)))

		got, err := s.List(ctx)
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "second", got[0].Name)
	})

	mt.Run("update отсутствующей записи", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := s.Update(ctx, "missing", models.Equipment{Name: "x"})
		require.ErrorIs(mt, err, storage.ErrNotFound)
	})

	mt.Run("update существующей записи", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		err := s.Update(ctx, "a1", models.Equipment{Name: "x"})
		require.NoError(mt, err)
	})

	mt.Run("delete удаляет журнал", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}),
		)

		require.NoError(mt, s.Delete(ctx, "a1"))
	})

	mt.Run("delete отсутствующей записи", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := s.Delete(ctx, "missing")
		require.ErrorIs(mt, err, storage.ErrNotFound)
	})

	mt.Run("add maintenance к существующему оборудованию", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt, equipmentCollection), mtest.FirstBatch,
				bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: int32(1)}}),
			mtest.CreateSuccessResponse(),
		)

		id, err := s.AddMaintenance(ctx, "a1", models.MaintenanceRecord{Date: "2025-02-01"})
		require.NoError(mt, err)
		assert.NotEmpty(mt, id)
	})

	mt.Run("add maintenance к отсутствующему оборудованию", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, equipmentCollection), mtest.FirstBatch))

		_, err := s.AddMaintenance(ctx, "missing", models.MaintenanceRecord{Date: "2025-02-01"})
		require.ErrorIs(mt, err, storage.ErrNotFound)
	})

	mt.Run("list maintenance", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, maintenanceCollection), mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "m2"},
				{Key: "equipment_id", Value: "a1"},
				{Key: "date", Value: "2025-03-01"},
				{Key: "created_at", Value: primitive.NewDateTimeFromTime(created)},
			},
			bson.D{
				{Key: "_id", Value: "m1"},
				{Key: "equipment_id", Value: "a1"},
				{Key: "date", Value: "2025-01-01"},
				{Key: "notes", Value: "first"},
				{Key: "created_at", Value: primitive.NewDateTimeFromTime(created)},
			}))

		got, err := s.ListMaintenance(ctx, "a1")
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "m2", got[0].ID)
		assert.Equal(mt, "first", got[1].Notes)
	})

	mt.Run("ошибка сервера пробрасывается", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Message: "interrupted",
			Name:    "InterruptedAtShutdown",
		}))

		_, err := s.List(ctx)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "storage.mongodb.List")
	})
}

func TestUpdateDocument(t *testing.T) {
	tests := []struct {
		name      string
		entry     models.Equipment
		wantSet   map[string]any
		wantUnset []string
	}{
		{
			name: "пустые необязательные поля удаляются",
			entry: models.Equipment{
				Name:            "Lift",
				Status:          models.StatusActive,
				PurchaseDate:    "2024-01-01",
				LastServiceDate: "2025-01-01",
			},
			wantSet:   map[string]any{"name": "Lift", "status": "active"},
			wantUnset: []string{"next_service_date", "location", "owner"},
		},
		{
			name: "заполненные поля сохраняются",
			entry: models.Equipment{
				Name:            "Lift",
				Status:          models.StatusMaintenance,
				NextServiceDate: "2025-06-30",
				Location:        "Warehouse",
				Owner:           "Operations",
			},
			wantSet: map[string]any{
				"next_service_date": "2025-06-30",
				"location":          "Warehouse",
				"owner":             "Operations",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := updateDocument(tt.entry).Map()

			set, ok := doc["$set"].(bson.D)
			require.True(t, ok)
			setMap := set.Map()
			for k, v := range tt.wantSet {
				assert.Equal(t, v, setMap[k], k)
			}

			if len(tt.wantUnset) == 0 {
				assert.NotContains(t, doc, "$unset")
				return
			}
			unset, ok := doc["$unset"].(bson.D)
			require.True(t, ok)
			keys := make([]string, 0, len(unset))
			for _, e := range unset {
				keys = append(keys, e.Key)
				assert.NotContains(t, setMap, e.Key)
			}
			assert.Equal(t, tt.wantUnset, keys)
		})
	}
}

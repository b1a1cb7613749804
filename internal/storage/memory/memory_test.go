package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/asset-maintenance/internal/models"
	"github.com/magabrotheeeer/asset-maintenance/internal/storage"
)

func newEntry(name string) models.Equipment {
	return models.Equipment{
		Name:                name,
		Status:              models.StatusActive,
		PurchaseDate:        "2024-01-01",
		LastServiceDate:     "2025-01-01",
		ServiceIntervalDays: 180,
		CreatedBy:           "alice",
		CreatedAt:           time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestStorage_CRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, err := s.Create(ctx, newEntry("first"))
	require.NoError(t, err)
	require.NotEmpty(t, id)
	_, err = s.Create(ctx, newEntry("second"))
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Name)

	upd := newEntry("renamed")
	upd.CreatedBy = "mallory"
	upd.UpdatedBy = "bob"
	require.NoError(t, s.Update(ctx, id, upd))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, "alice", got.CreatedBy)
	assert.Equal(t, "bob", got.UpdatedBy)
	assert.Equal(t, id, got.ID)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Get(ctx, id)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_NotFound(t *testing.T) {
	ctx := context.Background()
	s := New()

	tests := []struct {
		name string
		call func() error
	}{
		{name: "get", call: func() error { _, err := s.Get(ctx, "missing"); return err }},
		{name: "update", call: func() error { return s.Update(ctx, "missing", newEntry("x")) }},
		{name: "delete", call: func() error { return s.Delete(ctx, "missing") }},
		{name: "add maintenance", call: func() error {
			_, err := s.AddMaintenance(ctx, "missing", models.MaintenanceRecord{Date: "2025-01-01"})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.call(), storage.ErrNotFound)
		})
	}
}

func TestStorage_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	id, err := s.Create(ctx, newEntry("orig"))
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "orig", again.Name)
}

func TestStorage_Maintenance(t *testing.T) {
	ctx := context.Background()
	s := New()
	id, err := s.Create(ctx, newEntry("pump"))
	require.NoError(t, err)

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for _, r := range []models.MaintenanceRecord{
		{Date: "2025-01-01", Notes: "a", CreatedAt: base},
		{Date: "2025-03-01", Notes: "b", CreatedAt: base.Add(time.Minute)},
		{Date: "2025-03-01", Notes: "c", CreatedAt: base.Add(2 * time.Minute)},
		{Date: "2024-12-01", Notes: "d", CreatedAt: base.Add(3 * time.Minute)},
	} {
		_, err := s.AddMaintenance(ctx, id, r)
		require.NoError(t, err)
	}

	got, err := s.ListMaintenance(ctx, id)
	require.NoError(t, err)
	notes := make([]string, 0, len(got))
	for _, r := range got {
		notes = append(notes, r.Notes)
		assert.Equal(t, id, r.EquipmentID)
	}
	assert.Equal(t, []string{"c", "b", "a", "d"}, notes)

	require.NoError(t, s.Delete(ctx, id))
	got, err = s.ListMaintenance(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStorage_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Create(ctx, newEntry("x"))
			_, _ = s.List(ctx)
		}()
	}
	wg.Wait()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 50)
}

func TestStorage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().List(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

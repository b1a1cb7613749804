package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/magabrotheeeer/asset-maintenance/internal/migrations"
	"github.com/magabrotheeeer/asset-maintenance/internal/models"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) *Storage {
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	ctr, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "failed to start container")

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	path, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(s.DB, path))
	require.NoError(t, s.CheckDatabaseReady(ctx))

	return s
}

// newTestEquipment возвращает заполненную запись для вставки.
func newTestEquipment(name string) models.Equipment {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return models.Equipment{
		Name:                name,
		SerialNumber:        "SN-" + name,
		Status:              models.StatusActive,
		PurchaseDate:        "2024-01-15",
		LastServiceDate:     "2025-01-01",
		NextServiceDate:     "2025-06-30",
		ServiceIntervalDays: 180,
		Location:            "Tampa DC",
		Owner:               "Operations",
		CreatedBy:           "tester",
		CreatedAt:           now,
		UpdatedBy:           "tester",
		UpdatedAt:           now,
	}
}

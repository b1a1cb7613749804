package equipment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/asset-maintenance/internal/cache"
	"github.com/magabrotheeeer/asset-maintenance/internal/events"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/servicedate"
	"github.com/magabrotheeeer/asset-maintenance/internal/models"
	"github.com/magabrotheeeer/asset-maintenance/internal/storage"
	"github.com/magabrotheeeer/asset-maintenance/internal/storage/memory"
)

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(keys ...string) error {
	return m.Called(keys).Error(0)
}

type RepoMock struct {
	mock.Mock
	Repository
}

func (m *RepoMock) List(ctx context.Context) ([]*models.Equipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Equipment), args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	res := make([]string, 0, len(p.events))
	for _, e := range p.events {
		res = append(res, e.Type)
	}
	return res
}

var fixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestService(repo Repository, c Cache, p Publisher) *Service {
	return NewEquipmentService(repo, c, p, slog.New(slog.NewTextHandler(io.Discard, nil)), Settings{
		Location: time.UTC,
		CacheTTL: time.Minute,
		Now:      func() time.Time { return fixedNow },
	})
}

func validRequest() models.DummyEquipment {
	return models.DummyEquipment{
		Name:            "  Forklift  ",
		SerialNumber:    " FL-001 ",
		Status:          "active",
		PurchaseDate:    "2024-01-10",
		LastServiceDate: "2025-01-01",
		Location:        "  ",
		Owner:           "Operations",
	}
}

func TestService_CreateDerivesNextServiceDate(t *testing.T) {
	store := memory.New()
	pub := &recordingPublisher{}
	svc := newTestService(store, cache.Nop{}, pub)

	id, err := svc.Create(context.Background(), "alice", validRequest())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Forklift", got.Name)
	assert.Equal(t, "FL-001", got.SerialNumber)
	assert.Empty(t, got.Location)
	assert.Equal(t, "2025-06-30", got.NextServiceDate)
	assert.False(t, got.NextServiceDateManual)
	assert.Equal(t, 180, got.ServiceIntervalDays)
	assert.Equal(t, "alice", got.CreatedBy)
	assert.Equal(t, "alice", got.UpdatedBy)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.Equal(t, []string{events.EquipmentCreated}, pub.types())
}

func TestService_CreateKeepsExplicitDate(t *testing.T) {
	store := memory.New()
	svc := newTestService(store, cache.Nop{}, events.Nop{})

	req := validRequest()
	req.NextServiceDate = "2025-05-01T00:00:00Z"
	req.ServiceIntervalDays = 90
	id, err := svc.Create(context.Background(), "alice", req)
	require.NoError(t, err)

	got, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "2025-05-01", got.NextServiceDate)
	assert.True(t, got.NextServiceDateManual)
	assert.Equal(t, 90, got.ServiceIntervalDays)
}

func TestService_CreateRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.DummyEquipment)
	}{
		{"дата покупки в будущем", func(r *models.DummyEquipment) { r.PurchaseDate = "2025-06-16" }},
		{"дата обслуживания в будущем", func(r *models.DummyEquipment) { r.LastServiceDate = "2026-01-01" }},
		{"некорректная дата", func(r *models.DummyEquipment) { r.PurchaseDate = "10/01/2024" }},
		{"неизвестный статус", func(r *models.DummyEquipment) { r.Status = "broken" }},
		{"пустое название", func(r *models.DummyEquipment) { r.Name = "   " }},
		{"некорректная следующая дата", func(r *models.DummyEquipment) { r.NextServiceDate = "soon" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.New()
			pub := &recordingPublisher{}
			svc := newTestService(store, cache.Nop{}, pub)

			req := validRequest()
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), "alice", req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			items, _ := store.List(context.Background())
			assert.Empty(t, items)
			assert.Empty(t, pub.types())
		})
	}
}

func TestService_TodayIsAllowed(t *testing.T) {
	svc := newTestService(memory.New(), cache.Nop{}, events.Nop{})
	req := validRequest()
	req.PurchaseDate = "2025-06-15"
	req.LastServiceDate = "2025-06-15"
	_, err := svc.Create(context.Background(), "alice", req)
	require.NoError(t, err)
}

func TestService_UpdateRederivesAndClearsOptional(t *testing.T) {
	store := memory.New()
	pub := &recordingPublisher{}
	svc := newTestService(store, cache.Nop{}, pub)
	ctx := context.Background()

	req := validRequest()
	req.NextServiceDate = "2025-05-01"
	id, err := svc.Create(ctx, "alice", req)
	require.NoError(t, err)

	upd := validRequest()
	upd.Owner = ""
	upd.LastServiceDate = "2025-03-01"
	upd.ServiceIntervalDays = 30
	require.NoError(t, svc.Update(ctx, "bob", id, upd))

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-31", got.NextServiceDate)
	assert.False(t, got.NextServiceDateManual)
	assert.Empty(t, got.Owner)
	assert.Equal(t, "alice", got.CreatedBy)
	assert.Equal(t, "bob", got.UpdatedBy)
	assert.Equal(t, []string{events.EquipmentCreated, events.EquipmentUpdated}, pub.types())
}

func TestService_NotFound(t *testing.T) {
	svc := newTestService(memory.New(), cache.Nop{}, events.Nop{})
	ctx := context.Background()

	err := svc.Update(ctx, "bob", "missing", validRequest())
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = svc.Delete(ctx, "bob", "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = svc.Detail(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = svc.ListMaintenance(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = svc.AddMaintenance(ctx, "bob", "missing", models.DummyMaintenance{Date: "2025-06-01"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestService_DeleteRemovesEntry(t *testing.T) {
	store := memory.New()
	pub := &recordingPublisher{}
	svc := newTestService(store, cache.Nop{}, pub)
	ctx := context.Background()

	id, err := svc.Create(ctx, "alice", validRequest())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "alice", id))

	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, []string{events.EquipmentCreated, events.EquipmentDeleted}, pub.types())
}

func TestService_Detail(t *testing.T) {
	svc := newTestService(memory.New(), cache.Nop{}, events.Nop{})
	ctx := context.Background()

	id, err := svc.Create(ctx, "alice", validRequest())
	require.NoError(t, err)

	d, err := svc.Detail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, d.Entry.ID)
	require.NotNil(t, d.Schedule.DaysDelta)
	assert.Equal(t, 15, *d.Schedule.DaysDelta)
	assert.False(t, d.Schedule.Overdue)
	assert.True(t, d.Schedule.DueWithin30)
}

func TestService_DetailScheduleSource(t *testing.T) {
	tests := []struct {
		name       string
		next       string
		wantNext   string
		wantSource servicedate.Source
	}{
		{name: "без явной даты", next: "", wantNext: "2025-06-30", wantSource: servicedate.SourceDerived},
		{name: "явная дата", next: "2025-05-01", wantNext: "2025-05-01", wantSource: servicedate.SourceExplicit},
		{name: "явная дата совпадает с вычисленной", next: "2025-06-30", wantNext: "2025-06-30", wantSource: servicedate.SourceExplicit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(memory.New(), cache.Nop{}, events.Nop{})
			ctx := context.Background()

			req := validRequest()
			req.NextServiceDate = tt.next
			id, err := svc.Create(ctx, "alice", req)
			require.NoError(t, err)

			d, err := svc.Detail(ctx, id)
			require.NoError(t, err)
			require.NotNil(t, d.Schedule.ResolvedNextServiceDate)
			assert.Equal(t, tt.wantNext, *d.Schedule.ResolvedNextServiceDate)
			assert.Equal(t, tt.wantSource, d.Schedule.Source)
		})
	}
}

func TestService_Maintenance(t *testing.T) {
	store := memory.New()
	pub := &recordingPublisher{}
	svc := newTestService(store, cache.Nop{}, pub)
	ctx := context.Background()

	id, err := svc.Create(ctx, "alice", validRequest())
	require.NoError(t, err)

	empty, err := svc.ListMaintenance(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.AddMaintenance(ctx, "bob", id, models.DummyMaintenance{Date: "2025-02-01", Notes: " oil "})
	require.NoError(t, err)
	_, err = svc.AddMaintenance(ctx, "bob", id, models.DummyMaintenance{Date: "2025-05-01"})
	require.NoError(t, err)

	_, err = svc.AddMaintenance(ctx, "bob", id, models.DummyMaintenance{Date: "2025-07-01"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	records, err := svc.ListMaintenance(ctx, id)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-05-01", records[0].Date)
	assert.Equal(t, "2025-02-01", records[1].Date)
	assert.Equal(t, "oil", records[1].Notes)

	entry, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", entry.LastServiceDate)
	assert.Equal(t, []string{events.EquipmentCreated, events.MaintenanceAdded, events.MaintenanceAdded}, pub.types())
}

func TestService_List(t *testing.T) {
	store := memory.New()
	svc := newTestService(store, cache.Nop{}, events.Nop{})
	ctx := context.Background()

	for i, status := range []string{"active", "maintenance", "active", "inactive", "active"} {
		req := validRequest()
		req.Status = status
		req.Name = []string{"Pump", "Drill", "Press", "Lathe", "pump station"}[i]
		_, err := svc.Create(ctx, "alice", req)
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		filter    models.EquipmentFilter
		wantLen   int
		wantTotal int
	}{
		{"без фильтра", models.EquipmentFilter{}, 5, 5},
		{"по статусу", models.EquipmentFilter{Status: models.StatusActive}, 3, 3},
		{"поиск без учёта регистра", models.EquipmentFilter{Query: "PUMP"}, 2, 2},
		{"поиск по серийному номеру", models.EquipmentFilter{Query: "fl-0"}, 5, 5},
		{"limit", models.EquipmentFilter{Limit: 2}, 2, 5},
		{"offset", models.EquipmentFilter{Offset: 4, Limit: 10}, 1, 5},
		{"offset за пределами", models.EquipmentFilter{Offset: 10}, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := svc.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, items, tt.wantLen)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestService_SnapshotUsesCache(t *testing.T) {
	repo := new(RepoMock)
	c := new(CacheMock)
	svc := newTestService(repo, c, events.Nop{})

	c.On("Get", SnapshotKey, mock.Anything).Return(true, nil).Once()

	_, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	repo.AssertNotCalled(t, "List", mock.Anything)
	c.AssertExpectations(t)
}

func TestService_SnapshotCacheErrorFallsBack(t *testing.T) {
	repo := new(RepoMock)
	c := new(CacheMock)
	svc := newTestService(repo, c, events.Nop{})

	items := []*models.Equipment{{ID: "1", Name: "Pump"}}
	c.On("Get", SnapshotKey, mock.Anything).Return(false, errors.New("redis down")).Once()
	repo.On("List", mock.Anything).Return(items, nil).Once()
	c.On("Set", SnapshotKey, items, time.Minute).Return(errors.New("redis down")).Once()

	got, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, items, got)
	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestService_SnapshotRepoError(t *testing.T) {
	repo := new(RepoMock)
	c := new(CacheMock)
	svc := newTestService(repo, c, events.Nop{})

	c.On("Get", SnapshotKey, mock.Anything).Return(false, nil).Once()
	repo.On("List", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	_, err := svc.Snapshot(context.Background())
	require.Error(t, err)
	c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_WriteInvalidatesCache(t *testing.T) {
	c := new(CacheMock)
	svc := newTestService(memory.New(), c, events.Nop{})
	ctx := context.Background()

	c.On("Invalidate", []string{SnapshotKey}).Return(nil).Once()
	id, err := svc.Create(ctx, "alice", validRequest())
	require.NoError(t, err)

	c.On("Invalidate", []string{SnapshotKey, "equipment:" + id}).Return(errors.New("redis down")).Once()
	require.NoError(t, svc.Update(ctx, "alice", id, validRequest()))

	c.On("Invalidate", []string{SnapshotKey, "equipment:" + id}).Return(nil).Once()
	require.NoError(t, svc.Delete(ctx, "alice", id))
	c.AssertExpectations(t)
}

func TestService_PublishErrorDoesNotFailWrite(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("channel closed")}
	svc := newTestService(memory.New(), cache.Nop{}, pub)

	_, err := svc.Create(context.Background(), "alice", validRequest())
	require.NoError(t, err)
	assert.Len(t, pub.types(), 1)
}

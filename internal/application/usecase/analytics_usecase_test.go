package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/repairnotes-api/internal/application/dto"
	"github.com/jhoicas/repairnotes-api/internal/application/usecase"
	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
	"github.com/jhoicas/repairnotes-api/internal/infrastructure/memory"
)

type analyticsFixture struct {
	uc    *usecase.AnalyticsUseCase
	store *memory.Store
	clock *fakeClock
	seq   int
}

func newAnalyticsFixture(t *testing.T) *analyticsFixture {
	t.Helper()
	store := memory.NewStore()
	clock := newClock()
	uc, err := usecase.NewAnalyticsUseCase(store.Analytics(), store.Sessions(), "UTC", clock.Now)
	require.NoError(t, err)
	seedUser(t, store, "u1", "dave", entity.RoleEmployee)
	seedUser(t, store, "u2", "ana", entity.RoleEmployee)
	return &analyticsFixture{uc: uc, store: store, clock: clock}
}

// addNote crea una nota con antigüedad age; repairMinutes < 0 = pendiente.
func (f *analyticsFixture) addNote(t *testing.T, userID string, age time.Duration, repairMinutes int64) {
	t.Helper()
	f.seq++
	created := f.clock.Now().Add(-age)
	n := &entity.Note{
		ID:        "n" + string(rune('a'+f.seq)),
		UserID:    userID,
		Title:     "nota " + string(rune('a'+f.seq)),
		Text:      "x",
		CreatedAt: created,
		UpdatedAt: created,
	}
	if repairMinutes >= 0 {
		n.Completed = true
		n.RepairTime = decimal.NewNullDecimal(decimal.NewFromInt(repairMinutes))
		n.UpdatedAt = created.Add(time.Duration(repairMinutes) * time.Minute)
	}
	require.NoError(t, f.store.Notes().Create(context.Background(), n))
}

func TestSummary_TotalesPromedioYTendencia(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.addNote(t, "u1", 2*24*time.Hour, 60)       // cerrada hace ~2 días
	f.addNote(t, "u1", 3*24*time.Hour, 2*24*60)  // cerrada hace 1 día
	f.addNote(t, "u2", 30*24*time.Hour, 10*1440) // cerrada hace 20 días: fuera de la ventana
	f.addNote(t, "u2", time.Hour, -1)

	got, err := f.uc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.TotalNotes)
	assert.Equal(t, int64(3), got.TotalRepairs)
	// (60 + 2880 + 14400) / 3 = 5780 min = 4.01 días
	assert.Equal(t, int64(4), got.AvgRepairTime)
	assert.Equal(t, []dto.DayCountDTO{
		{Date: "09-06-2026", Count: 1},
		{Date: "08-06-2026", Count: 1},
	}, got.RepairsTrend)
}

func TestSummary_SinReparaciones(t *testing.T) {
	f := newAnalyticsFixture(t)
	got, err := f.uc.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.AvgRepairTime)
	assert.Empty(t, got.RepairsTrend)
}

func TestVentanaMovil_SeRecalculaEnCadaLlamada(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.addNote(t, "u1", 7*24*time.Hour-time.Hour, 10)
	ctx := context.Background()

	stats, err := f.uc.UserNoteStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	f.clock.Advance(2 * time.Hour)
	stats, err = f.uc.UserNoteStats(ctx)
	require.NoError(t, err)
	assert.Empty(t, stats, "la nota quedó fuera de now-7d")

	perf, err := f.uc.EmployeePerformance(ctx)
	require.NoError(t, err)
	assert.Empty(t, perf)
}

func TestUserNoteStats_OrdenPorUsername(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.addNote(t, "u1", time.Hour, 5)
	f.addNote(t, "u1", time.Hour, -1)
	f.addNote(t, "u2", time.Hour, -1)

	got, err := f.uc.UserNoteStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.UserNoteStatsDTO{
		{UserID: "u2", Username: "ana", CompletedCount: 0, PendingCount: 1},
		{UserID: "u1", Username: "dave", CompletedCount: 1, PendingCount: 1},
	}, got)
}

func TestEmployeePerformance_Ranking(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.addNote(t, "u2", time.Hour, 5)
	f.addNote(t, "u1", time.Hour, 5)
	f.addNote(t, "u1", 2*time.Hour, 5)

	got, err := f.uc.EmployeePerformance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.EmployeePerformanceDTO{
		{Username: "dave", CompletedCount: 2},
		{Username: "ana", CompletedCount: 1},
	}, got)
}

func TestRepairTimeDistribution_Buckets(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.addNote(t, "u1", 40*24*time.Hour, 1440)
	f.addNote(t, "u1", 40*24*time.Hour, 3000)
	f.addNote(t, "u1", 40*24*time.Hour, 20000)
	f.addNote(t, "u1", time.Hour, -1)

	got, err := f.uc.RepairTimeDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4)
	counts := map[string]int64{}
	for _, b := range got {
		counts[b.Label] = b.Count
	}
	assert.Equal(t, map[string]int64{"0-2Days": 1, "2-5Days": 1, "5-10Days": 0, ">10Days": 1}, counts)
	assert.Nil(t, got[3].Max, "el bucket de desborde no tiene límite superior")
}

func TestRepairTrend_EnDiasAscendente(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.addNote(t, "u1", time.Hour, 2160)
	f.addNote(t, "u1", 10*24*time.Hour, 720)

	got, err := f.uc.RepairTrend(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 0.5, got[0].RepairTimeDays)
	assert.Equal(t, 1.5, got[1].RepairTimeDays)
	assert.True(t, got[0].CreatedAt.Before(got[1].CreatedAt))
}

func TestCreationTrend_Ascendente(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.addNote(t, "u1", 24*time.Hour, -1)
	f.addNote(t, "u1", 3*24*time.Hour, -1)
	f.addNote(t, "u2", 3*24*time.Hour+time.Hour, -1)
	f.addNote(t, "u2", 9*24*time.Hour, -1)

	got, err := f.uc.CreationTrend(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.DayCountDTO{
		{Date: "07-06-2026", Count: 2},
		{Date: "09-06-2026", Count: 1},
	}, got)
}

func TestActiveUsers_DesdeSesiones(t *testing.T) {
	f := newAnalyticsFixture(t)
	_, err := f.store.Sessions().CreateIfAbsent(context.Background(), &entity.Session{
		ID: "s1", UserID: "u1", Username: "dave", LoginTime: f.clock.Now(),
	})
	require.NoError(t, err)

	got, err := f.uc.ActiveUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.ActiveUserDTO{{Username: "dave", LoginTime: f.clock.Now()}}, got)
}

func TestNewAnalyticsUseCase_ZonaInvalida(t *testing.T) {
	store := memory.NewStore()
	_, err := usecase.NewAnalyticsUseCase(store.Analytics(), store.Sessions(), "Marte/Olympus", nil)
	assert.Error(t, err)
}

func TestSummary_TendenciaCuentaCierresNoAltas(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.addNote(t, "u1", 10*24*time.Hour, 8*1440) // creada fuera de la ventana, cerrada hace 2 días
	f.addNote(t, "u1", 24*time.Hour, -1)        // creada dentro, sin cerrar

	got, err := f.uc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.DayCountDTO{{Date: "08-06-2026", Count: 1}}, got.RepairsTrend)
}

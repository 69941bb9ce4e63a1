package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/repairnotes-api/internal/application/dto"
	"github.com/jhoicas/repairnotes-api/internal/domain/repair"
	"github.com/jhoicas/repairnotes-api/internal/domain/repository"
)

// analyticsWindow ventana móvil de las métricas semanales, recalculada en cada llamada.
const analyticsWindow = 7 * 24 * time.Hour

// dayFormat formato de los días en las tendencias.
const dayFormat = "02-01-2006"

// AnalyticsUseCase deriva métricas de reparación a partir de notas y sesiones.
// Es read-only: no hay caché ni bloqueo, cada llamada consulta el store.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	sessionRepo   repository.SessionRepository
	timezone      string
	now           func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso. timezone se usa para agrupar por día
// calendario y debe ser un nombre IANA válido.
func NewAnalyticsUseCase(
	analyticsRepo repository.AnalyticsRepository,
	sessionRepo repository.SessionRepository,
	timezone string,
	now func() time.Time,
) (*AnalyticsUseCase, error) {
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, fmt.Errorf("analytics: zona horaria %q: %w", timezone, err)
	}
	if now == nil {
		now = time.Now
	}
	return &AnalyticsUseCase{
		analyticsRepo: analyticsRepo,
		sessionRepo:   sessionRepo,
		timezone:      timezone,
		now:           now,
	}, nil
}

// Timezone zona horaria usada para agrupar por día.
func (uc *AnalyticsUseCase) Timezone() string { return uc.timezone }

func (uc *AnalyticsUseCase) windowStart() time.Time {
	return uc.now().Add(-analyticsWindow)
}

// Summary totales, promedio de reparación en días y reparaciones por día de la última semana.
//
// Tres consultas en paralelo:
//  1. CountNotes            → TotalNotes + TotalRepairs
//  2. AverageRepairMinutes  → AvgRepairTime
//  3. CompletionsByDay(7d)  → RepairsTrend
func (uc *AnalyticsUseCase) Summary(ctx context.Context) (*dto.AnalyticsSummaryDTO, error) {
	var (
		out  dto.AnalyticsSummaryDTO
		days []repository.DayCount
	)
	since := uc.windowStart()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, completed, err := uc.analyticsRepo.CountNotes(gctx)
		if err != nil {
			return fmt.Errorf("totales: %w", err)
		}
		out.TotalNotes, out.TotalRepairs = total, completed
		return nil
	})
	g.Go(func() error {
		avg, err := uc.analyticsRepo.AverageRepairMinutes(gctx)
		if err != nil {
			return fmt.Errorf("promedio: %w", err)
		}
		out.AvgRepairTime = repair.AverageDays(avg)
		return nil
	})
	g.Go(func() error {
		var err error
		if days, err = uc.analyticsRepo.CompletionsByDay(gctx, since, uc.timezone); err != nil {
			return fmt.Errorf("tendencia: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analytics.Summary: %w", err)
	}
	out.RepairsTrend = toDayCounts(days)
	return &out, nil
}

// RepairTrend serie {createdAt, repairTimeDays} de todas las notas completadas, ascendente.
func (uc *AnalyticsUseCase) RepairTrend(ctx context.Context) ([]dto.RepairTimePointDTO, error) {
	rows, err := uc.analyticsRepo.RepairTimes(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics.RepairTrend: %w", err)
	}
	out := make([]dto.RepairTimePointDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.RepairTimePointDTO{
			ID:             r.NoteID,
			CreatedAt:      r.CreatedAt,
			RepairTimeDays: repair.MinutesToDays(r.RepairTime).InexactFloat64(),
		})
	}
	return out, nil
}

// UserNoteStats completadas vs pendientes por usuario (última semana), por username.
func (uc *AnalyticsUseCase) UserNoteStats(ctx context.Context) ([]dto.UserNoteStatsDTO, error) {
	rows, err := uc.analyticsRepo.UserNoteStats(ctx, uc.windowStart())
	if err != nil {
		return nil, fmt.Errorf("analytics.UserNoteStats: %w", err)
	}
	out := make([]dto.UserNoteStatsDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.UserNoteStatsDTO{
			UserID:         r.UserID,
			Username:       r.Username,
			CompletedCount: r.CompletedCount,
			PendingCount:   r.PendingCount,
		})
	}
	return out, nil
}

// ActiveUsers sesiones registradas (no conexiones en vivo).
func (uc *AnalyticsUseCase) ActiveUsers(ctx context.Context) ([]dto.ActiveUserDTO, error) {
	sessions, err := uc.sessionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics.ActiveUsers: %w", err)
	}
	out := make([]dto.ActiveUserDTO, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, dto.ActiveUserDTO{Username: s.Username, LoginTime: s.LoginTime})
	}
	return out, nil
}

// EmployeePerformance ranking de notas completadas por usuario (última semana).
func (uc *AnalyticsUseCase) EmployeePerformance(ctx context.Context) ([]dto.EmployeePerformanceDTO, error) {
	rows, err := uc.analyticsRepo.EmployeePerformance(ctx, uc.windowStart())
	if err != nil {
		return nil, fmt.Errorf("analytics.EmployeePerformance: %w", err)
	}
	out := make([]dto.EmployeePerformanceDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.EmployeePerformanceDTO{Username: r.Username, CompletedCount: r.CompletedCount})
	}
	return out, nil
}

// RepairTimeDistribution cuenta las notas completadas por rango de tiempo de reparación.
func (uc *AnalyticsUseCase) RepairTimeDistribution(ctx context.Context) ([]dto.RepairTimeBucketDTO, error) {
	rows, err := uc.analyticsRepo.RepairTimes(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics.RepairTimeDistribution: %w", err)
	}
	minutes := make([]decimal.Decimal, 0, len(rows))
	for _, r := range rows {
		minutes = append(minutes, r.RepairTime)
	}
	counts := repair.Distribution(minutes)
	out := make([]dto.RepairTimeBucketDTO, len(repair.Buckets))
	for i, b := range repair.Buckets {
		out[i] = dto.RepairTimeBucketDTO{Label: b.Label, Min: b.Min, Max: b.Max, Count: counts[i]}
	}
	return out, nil
}

// CreationTrend notas creadas por día en la última semana, ascendente.
func (uc *AnalyticsUseCase) CreationTrend(ctx context.Context) ([]dto.DayCountDTO, error) {
	days, err := uc.analyticsRepo.CreationsByDay(ctx, uc.windowStart(), uc.timezone)
	if err != nil {
		return nil, fmt.Errorf("analytics.CreationTrend: %w", err)
	}
	return toDayCounts(days), nil
}

func toDayCounts(days []repository.DayCount) []dto.DayCountDTO {
	out := make([]dto.DayCountDTO, 0, len(days))
	for _, d := range days {
		out = append(out, dto.DayCountDTO{Date: d.Day.Format(dayFormat), Count: d.Count})
	}
	return out
}

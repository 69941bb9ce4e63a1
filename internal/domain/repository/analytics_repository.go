package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DayCount conteo agrupado por día calendario (Day a medianoche en la zona pedida).
type DayCount struct {
	Day   time.Time
	Count int64
}

// RepairTimeResult nota completada con su tiempo de reparación en minutos.
type RepairTimeResult struct {
	NoteID     string
	CreatedAt  time.Time
	RepairTime decimal.Decimal
}

// UserNoteStatsResult notas completadas/pendientes de un usuario.
type UserNoteStatsResult struct {
	UserID         string
	Username       string
	CompletedCount int64
	PendingCount   int64
}

// EmployeePerformanceResult notas completadas por usuario.
type EmployeePerformanceResult struct {
	UserID         string
	Username       string
	CompletedCount int64
}

// AnalyticsRepository define las consultas de lectura para la analítica de reparaciones.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// CountNotes devuelve el total de notas y cuántas están completadas.
	CountNotes(ctx context.Context) (total, completed int64, err error)

	// AverageRepairMinutes promedio de repair_time de las notas completadas (nulo si no hay).
	AverageRepairMinutes(ctx context.Context) (decimal.NullDecimal, error)

	// CompletionsByDay reparaciones cerradas desde since, agrupadas por día de cierre
	// en la zona horaria tz, ordenadas por día descendente. Cuenta cierres: una nota creada
	// antes de since pero cerrada después sí entra.
	CompletionsByDay(ctx context.Context, since time.Time, tz string) ([]DayCount, error)

	// RepairTimes todas las notas completadas con repair_time, por fecha de creación ascendente.
	RepairTimes(ctx context.Context) ([]RepairTimeResult, error)

	// UserNoteStats notas creadas desde since agrupadas por usuario, ordenadas por username.
	UserNoteStats(ctx context.Context, since time.Time) ([]UserNoteStatsResult, error)

	// EmployeePerformance notas completadas creadas desde since por usuario, de mayor a menor.
	EmployeePerformance(ctx context.Context, since time.Time) ([]EmployeePerformanceResult, error)

	// CreationsByDay notas creadas desde since por día (zona tz), día ascendente.
	CreationsByDay(ctx context.Context, since time.Time, tz string) ([]DayCount, error)
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/repairnotes-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para la analítica de reparaciones.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountNotes total de notas y completadas en una sola pasada.
func (r *AnalyticsRepo) CountNotes(ctx context.Context) (total, completed int64, err error) {
	const query = `
	SELECT COUNT(*), COUNT(*) FILTER (WHERE completed)
	FROM notes`
	if err := r.q.QueryRow(ctx, query).Scan(&total, &completed); err != nil {
		return 0, 0, fmt.Errorf("count notes: %w", err)
	}
	return total, completed, nil
}

// AverageRepairMinutes AVG(repair_time) de las notas completadas; NULL si no hay ninguna.
func (r *AnalyticsRepo) AverageRepairMinutes(ctx context.Context) (decimal.NullDecimal, error) {
	const query = `
	SELECT AVG(repair_time)
	FROM notes
	WHERE completed AND repair_time IS NOT NULL`
	var avg decimal.NullDecimal
	if err := r.q.QueryRow(ctx, query).Scan(&avg); err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("avg repair time: %w", err)
	}
	return avg, nil
}

// CompletionsByDay agrupa por día de cierre: created_at + repair_time minutos
// (updated_at para filas sin repair_time), convertido a la zona tz. No se usa created_at:
// la serie cuenta cierres, no altas.
func (r *AnalyticsRepo) CompletionsByDay(ctx context.Context, since time.Time, tz string) ([]repository.DayCount, error) {
	const query = `
	WITH closed AS (
	    SELECT COALESCE(created_at + repair_time::float8 * INTERVAL '1 minute', updated_at) AS closed_at
	    FROM notes
	    WHERE completed
	)
	SELECT (closed_at AT TIME ZONE $2)::date AS day, COUNT(*)
	FROM closed
	WHERE closed_at >= $1
	GROUP BY day
	ORDER BY day DESC`
	return r.dayCounts(ctx, query, since, tz)
}

// RepairTimes notas completadas con su repair_time, por fecha de creación.
func (r *AnalyticsRepo) RepairTimes(ctx context.Context) ([]repository.RepairTimeResult, error) {
	const query = `
	SELECT id, created_at, repair_time
	FROM notes
	WHERE completed AND repair_time IS NOT NULL
	ORDER BY created_at, id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repair times: %w", err)
	}
	defer rows.Close()

	var out []repository.RepairTimeResult
	for rows.Next() {
		var row repository.RepairTimeResult
		if err := rows.Scan(&row.NoteID, &row.CreatedAt, &row.RepairTime); err != nil {
			return nil, fmt.Errorf("scan repair time: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// UserNoteStats completadas y pendientes por usuario, notas creadas desde since.
func (r *AnalyticsRepo) UserNoteStats(ctx context.Context, since time.Time) ([]repository.UserNoteStatsResult, error) {
	const query = `
	SELECT u.id, u.username,
	       COUNT(*) FILTER (WHERE n.completed)     AS completed_count,
	       COUNT(*) FILTER (WHERE NOT n.completed) AS pending_count
	FROM notes n
	JOIN users u ON u.id = n.user_id
	WHERE n.created_at >= $1
	GROUP BY u.id, u.username
	ORDER BY u.username`

	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("user note stats: %w", err)
	}
	defer rows.Close()

	var out []repository.UserNoteStatsResult
	for rows.Next() {
		var row repository.UserNoteStatsResult
		if err := rows.Scan(&row.UserID, &row.Username, &row.CompletedCount, &row.PendingCount); err != nil {
			return nil, fmt.Errorf("scan user note stats: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// EmployeePerformance completadas por usuario, de mayor a menor; empate por username.
func (r *AnalyticsRepo) EmployeePerformance(ctx context.Context, since time.Time) ([]repository.EmployeePerformanceResult, error) {
	const query = `
	SELECT u.id, u.username, COUNT(*) AS completed_count
	FROM notes n
	JOIN users u ON u.id = n.user_id
	WHERE n.completed AND n.created_at >= $1
	GROUP BY u.id, u.username
	ORDER BY completed_count DESC, u.username`

	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("employee performance: %w", err)
	}
	defer rows.Close()

	var out []repository.EmployeePerformanceResult
	for rows.Next() {
		var row repository.EmployeePerformanceResult
		if err := rows.Scan(&row.UserID, &row.Username, &row.CompletedCount); err != nil {
			return nil, fmt.Errorf("scan employee performance: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// CreationsByDay notas creadas desde since por día calendario en tz, ascendente.
func (r *AnalyticsRepo) CreationsByDay(ctx context.Context, since time.Time, tz string) ([]repository.DayCount, error) {
	const query = `
	SELECT (created_at AT TIME ZONE $2)::date AS day, COUNT(*)
	FROM notes
	WHERE created_at >= $1
	GROUP BY day
	ORDER BY day`
	return r.dayCounts(ctx, query, since, tz)
}

func (r *AnalyticsRepo) dayCounts(ctx context.Context, query string, since time.Time, tz string) ([]repository.DayCount, error) {
	rows, err := r.q.Query(ctx, query, since, tz)
	if err != nil {
		return nil, fmt.Errorf("day counts: %w", err)
	}
	defer rows.Close()

	var out []repository.DayCount
	for rows.Next() {
		var d repository.DayCount
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, fmt.Errorf("scan day count: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

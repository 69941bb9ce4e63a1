package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
	"github.com/jhoicas/repairnotes-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implementación en memoria de AnalyticsRepository.
type AnalyticsRepo struct {
	s *Store
}

// CountNotes total de notas y completadas.
func (r *AnalyticsRepo) CountNotes(_ context.Context) (total, completed int64, err error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, n := range r.s.notes {
		total++
		if n.Completed {
			completed++
		}
	}
	return total, completed, nil
}

// AverageRepairMinutes promedio de repair_time de las completadas.
func (r *AnalyticsRepo) AverageRepairMinutes(_ context.Context) (decimal.NullDecimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var values []decimal.Decimal
	for _, n := range r.s.notes {
		if n.Completed && n.RepairTime.Valid {
			values = append(values, n.RepairTime.Decimal)
		}
	}
	if len(values) == 0 {
		return decimal.NullDecimal{}, nil
	}
	return decimal.NewNullDecimal(decimal.Avg(values[0], values[1:]...)), nil
}

// CompletionsByDay reparaciones cerradas desde since por día de cierre (no de creación), descendente.
func (r *AnalyticsRepo) CompletionsByDay(_ context.Context, since time.Time, tz string) ([]repository.DayCount, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("memory.CompletionsByDay: %w", err)
	}
	r.s.mu.RLock()
	var times []time.Time
	for _, n := range r.s.notes {
		if !n.Completed {
			continue
		}
		if at := CompletedAt(n); !at.Before(since) {
			times = append(times, at)
		}
	}
	r.s.mu.RUnlock()
	days := groupByDay(times, loc)
	sort.Slice(days, func(i, j int) bool { return days[i].Day.After(days[j].Day) })
	return days, nil
}

// RepairTimes notas completadas con repair_time, por creación ascendente.
func (r *AnalyticsRepo) RepairTimes(_ context.Context) ([]repository.RepairTimeResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []repository.RepairTimeResult
	for _, n := range r.s.notes {
		if n.Completed && n.RepairTime.Valid {
			out = append(out, repository.RepairTimeResult{NoteID: n.ID, CreatedAt: n.CreatedAt, RepairTime: n.RepairTime.Decimal})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// UserNoteStats completadas/pendientes por usuario para notas creadas desde since.
func (r *AnalyticsRepo) UserNoteStats(_ context.Context, since time.Time) ([]repository.UserNoteStatsResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byUser := make(map[string]*repository.UserNoteStatsResult)
	for _, n := range r.s.notes {
		if n.CreatedAt.Before(since) {
			continue
		}
		u, ok := r.s.users[n.UserID]
		if !ok {
			continue
		}
		row, ok := byUser[n.UserID]
		if !ok {
			row = &repository.UserNoteStatsResult{UserID: u.ID, Username: u.Username}
			byUser[n.UserID] = row
		}
		if n.Completed {
			row.CompletedCount++
		} else {
			row.PendingCount++
		}
	}
	out := make([]repository.UserNoteStatsResult, 0, len(byUser))
	for _, row := range byUser {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// EmployeePerformance completadas por usuario para notas creadas desde since, de mayor a menor.
func (r *AnalyticsRepo) EmployeePerformance(_ context.Context, since time.Time) ([]repository.EmployeePerformanceResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byUser := make(map[string]*repository.EmployeePerformanceResult)
	for _, n := range r.s.notes {
		if !n.Completed || n.CreatedAt.Before(since) {
			continue
		}
		u, ok := r.s.users[n.UserID]
		if !ok {
			continue
		}
		row, ok := byUser[n.UserID]
		if !ok {
			row = &repository.EmployeePerformanceResult{UserID: u.ID, Username: u.Username}
			byUser[n.UserID] = row
		}
		row.CompletedCount++
	}
	out := make([]repository.EmployeePerformanceResult, 0, len(byUser))
	for _, row := range byUser {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CompletedCount != out[j].CompletedCount {
			return out[i].CompletedCount > out[j].CompletedCount
		}
		return out[i].Username < out[j].Username
	})
	return out, nil
}

// CreationsByDay notas creadas desde since por día, ascendente.
func (r *AnalyticsRepo) CreationsByDay(_ context.Context, since time.Time, tz string) ([]repository.DayCount, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("memory.CreationsByDay: %w", err)
	}
	r.s.mu.RLock()
	var times []time.Time
	for _, n := range r.s.notes {
		if !n.CreatedAt.Before(since) {
			times = append(times, n.CreatedAt)
		}
	}
	r.s.mu.RUnlock()
	days := groupByDay(times, loc)
	sort.Slice(days, func(i, j int) bool { return days[i].Day.Before(days[j].Day) })
	return days, nil
}

// CompletedAt instante de cierre de una nota: creación + repair_time, o updatedAt si no lo tiene.
func CompletedAt(n *entity.Note) time.Time {
	if !n.RepairTime.Valid {
		return n.UpdatedAt
	}
	ms := n.RepairTime.Decimal.Mul(decimal.NewFromInt(int64(time.Minute / time.Millisecond))).IntPart()
	return n.CreatedAt.Add(time.Duration(ms) * time.Millisecond)
}

func groupByDay(times []time.Time, loc *time.Location) []repository.DayCount {
	counts := make(map[time.Time]int64)
	for _, t := range times {
		lt := t.In(loc)
		day := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
		counts[day]++
	}
	out := make([]repository.DayCount, 0, len(counts))
	for day, c := range counts {
		out = append(out, repository.DayCount{Day: day, Count: c})
	}
	return out
}

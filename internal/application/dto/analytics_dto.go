package dto

import "time"

// ── Resumen ───────────────────────────────────────────────────────────────────

// DayCountDTO conteo por día calendario; Date con formato DD-MM-YYYY.
type DayCountDTO struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// AnalyticsSummaryDTO respuesta de GET /analytics.
type AnalyticsSummaryDTO struct {
	TotalNotes    int64         `json:"totalNotes"`
	TotalRepairs  int64         `json:"totalRepairs"`
	AvgRepairTime int64         `json:"avgRepairTime"` // días, redondeado
	RepairsTrend  []DayCountDTO `json:"repairsTrend"`  // últimos 7 días, día descendente
}

// ── Series ────────────────────────────────────────────────────────────────────

// RepairTimePointDTO punto de GET /analytics/notes-repair-trend.
type RepairTimePointDTO struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	RepairTimeDays float64   `json:"repairTimeDays"`
}

// UserNoteStatsDTO fila de GET /analytics/user-notes-stats.
type UserNoteStatsDTO struct {
	UserID         string `json:"userId"`
	Username       string `json:"username"`
	CompletedCount int64  `json:"completedCount"`
	PendingCount   int64  `json:"pendingCount"`
}

// ActiveUserDTO fila de GET /analytics/active-users.
type ActiveUserDTO struct {
	Username  string    `json:"username"`
	LoginTime time.Time `json:"loginTime"`
}

// EmployeePerformanceDTO fila de GET /analytics/employee-performance.
type EmployeePerformanceDTO struct {
	Username       string `json:"username"`
	CompletedCount int64  `json:"completedCount"`
}

// RepairTimeBucketDTO bucket de GET /analytics/repair-time-distribution.
// Max nulo = bucket de desborde (sin límite superior).
type RepairTimeBucketDTO struct {
	Label string `json:"label"`
	Min   int64  `json:"min"`
	Max   *int64 `json:"max"`
	Count int64  `json:"count"`
}

// ── Reporte PDF ───────────────────────────────────────────────────────────────

// AnalyticsReportDTO datos combinados para GET /analytics/report.
type AnalyticsReportDTO struct {
	GeneratedAt  time.Time
	Timezone     string
	Summary      AnalyticsSummaryDTO
	Performance  []EmployeePerformanceDTO
	Distribution []RepairTimeBucketDTO
	ActiveUsers  []ActiveUserDTO
}

package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/repairnotes-api/internal/application/dto"
)

func TestGenerateAnalyticsReport_ProducePDF(t *testing.T) {
	gen := NewMarotoPDFGenerator("test")
	report := &dto.AnalyticsReportDTO{
		GeneratedAt: time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC),
		Timezone:    "America/Bogota",
		Summary: dto.AnalyticsSummaryDTO{
			TotalNotes: 4, TotalRepairs: 3, AvgRepairTime: 2,
			RepairsTrend: []dto.DayCountDTO{{Date: "09-06-2026", Count: 2}},
		},
		Performance:  []dto.EmployeePerformanceDTO{{Username: "dave", CompletedCount: 3}},
		Distribution: []dto.RepairTimeBucketDTO{{Label: "0-2Days", Count: 3}},
	}

	out, err := gen.GenerateAnalyticsReport(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateAnalyticsReport_SinDatos(t *testing.T) {
	out, err := NewMarotoPDFGenerator("").GenerateAnalyticsReport(context.Background(), &dto.AnalyticsReportDTO{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

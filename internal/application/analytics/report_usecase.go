// Package analytics contiene el caso de uso del reporte PDF de reparaciones.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/repairnotes-api/internal/application/dto"
)

// MetricsSource métricas que alimentan el reporte (implementado por usecase.AnalyticsUseCase).
type MetricsSource interface {
	Summary(ctx context.Context) (*dto.AnalyticsSummaryDTO, error)
	EmployeePerformance(ctx context.Context) ([]dto.EmployeePerformanceDTO, error)
	RepairTimeDistribution(ctx context.Context) ([]dto.RepairTimeBucketDTO, error)
	ActiveUsers(ctx context.Context) ([]dto.ActiveUserDTO, error)
	Timezone() string
}

// ReportGenerator puerto de salida: renderiza el reporte a PDF.
type ReportGenerator interface {
	GenerateAnalyticsReport(ctx context.Context, report *dto.AnalyticsReportDTO) ([]byte, error)
}

// ReportUseCase arma el reporte de analítica y lo entrega como PDF.
type ReportUseCase struct {
	metrics   MetricsSource
	generator ReportGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso. now nil = time.Now.
func NewReportUseCase(metrics MetricsSource, generator ReportGenerator, now func() time.Time) *ReportUseCase {
	if now == nil {
		now = time.Now
	}
	return &ReportUseCase{metrics: metrics, generator: generator, now: now}
}

// Download reúne resumen, ranking, distribución y sesiones, y genera el PDF.
//
// Cuatro consultas en paralelo; cualquier error aborta el reporte.
func (uc *ReportUseCase) Download(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	type summaryResult struct {
		v   *dto.AnalyticsSummaryDTO
		err error
	}
	type perfResult struct {
		v   []dto.EmployeePerformanceDTO
		err error
	}
	type distResult struct {
		v   []dto.RepairTimeBucketDTO
		err error
	}
	type usersResult struct {
		v   []dto.ActiveUserDTO
		err error
	}

	summaryCh := make(chan summaryResult, 1)
	perfCh := make(chan perfResult, 1)
	distCh := make(chan distResult, 1)
	usersCh := make(chan usersResult, 1)

	go func() {
		v, err := uc.metrics.Summary(ctx)
		summaryCh <- summaryResult{v, err}
	}()
	go func() {
		v, err := uc.metrics.EmployeePerformance(ctx)
		perfCh <- perfResult{v, err}
	}()
	go func() {
		v, err := uc.metrics.RepairTimeDistribution(ctx)
		distCh <- distResult{v, err}
	}()
	go func() {
		v, err := uc.metrics.ActiveUsers(ctx)
		usersCh <- usersResult{v, err}
	}()

	summary, perf, dist, users := <-summaryCh, <-perfCh, <-distCh, <-usersCh
	for _, e := range []error{summary.err, perf.err, dist.err, users.err} {
		if e != nil {
			return nil, "", fmt.Errorf("report: métricas: %w", e)
		}
	}

	now := uc.now()
	report := &dto.AnalyticsReportDTO{
		GeneratedAt:  now,
		Timezone:     uc.metrics.Timezone(),
		Summary:      *summary.v,
		Performance:  perf.v,
		Distribution: dist.v,
		ActiveUsers:  users.v,
	}
	pdfBytes, err = uc.generator.GenerateAnalyticsReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("report: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("reporte_reparaciones_%s.pdf", now.Format("20060102"))
	return pdfBytes, filename, nil
}

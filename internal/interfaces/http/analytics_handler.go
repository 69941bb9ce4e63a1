package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/repairnotes-api/internal/application/analytics"
	"github.com/jhoicas/repairnotes-api/internal/application/usecase"
)

// AnalyticsHandler maneja los endpoints de analítica de reparaciones.
type AnalyticsHandler struct {
	uc     *usecase.AnalyticsUseCase
	report *analytics.ReportUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase, report *analytics.ReportUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, report: report}
}

// respond serializa el resultado de una consulta de analítica o propaga su error.
func respond[T any](c *fiber.Ctx, fn func(ctx context.Context) (T, error)) error {
	out, err := fn(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de reparaciones
// @Description  Totales, promedio de reparación en días y reparaciones por día (7 días).
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AnalyticsSummaryDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /analytics [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	return respond(c, h.uc.Summary)
}

// RepairTrend godoc
// @Summary      Tiempo de reparación por nota
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RepairTimePointDTO
// @Router       /analytics/notes-repair-trend [get]
func (h *AnalyticsHandler) RepairTrend(c *fiber.Ctx) error {
	return respond(c, h.uc.RepairTrend)
}

// UserNoteStats godoc
// @Summary      Notas completadas y pendientes por usuario (7 días)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserNoteStatsDTO
// @Router       /analytics/user-notes-stats [get]
func (h *AnalyticsHandler) UserNoteStats(c *fiber.Ctx) error {
	return respond(c, h.uc.UserNoteStats)
}

// ActiveUsers godoc
// @Summary      Sesiones registradas
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ActiveUserDTO
// @Router       /analytics/active-users [get]
func (h *AnalyticsHandler) ActiveUsers(c *fiber.Ctx) error {
	return respond(c, h.uc.ActiveUsers)
}

// EmployeePerformance godoc
// @Summary      Ranking de notas completadas por empleado (7 días)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EmployeePerformanceDTO
// @Router       /analytics/employee-performance [get]
func (h *AnalyticsHandler) EmployeePerformance(c *fiber.Ctx) error {
	return respond(c, h.uc.EmployeePerformance)
}

// RepairTimeDistribution godoc
// @Summary      Distribución del tiempo de reparación
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RepairTimeBucketDTO
// @Router       /analytics/repair-time-distribution [get]
func (h *AnalyticsHandler) RepairTimeDistribution(c *fiber.Ctx) error {
	return respond(c, h.uc.RepairTimeDistribution)
}

// CreationTrend godoc
// @Summary      Notas creadas por día (7 días)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DayCountDTO
// @Router       /analytics/notes-creation-trend [get]
func (h *AnalyticsHandler) CreationTrend(c *fiber.Ctx) error {
	return respond(c, h.uc.CreationTrend)
}

// Report godoc
// @Summary      Reporte PDF de reparaciones
// @Tags         analytics
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /analytics/report [get]
func (h *AnalyticsHandler) Report(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.report.Download(c.Context())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

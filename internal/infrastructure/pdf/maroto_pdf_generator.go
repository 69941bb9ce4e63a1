// Package pdf implementa el reporte PDF de analítica de reparaciones.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + zona horaria  │  Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Notas | Reparaciones | Promedio (días)                │
//	│  TENDENCIA: reparaciones por día (7 días)                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ranking de empleados                                 │
//	│  TABLA: Distribución de tiempos de reparación                │
//	│  TABLA: Sesiones activas                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/repairnotes-api/internal/application/analytics"
	"github.com/jhoicas/repairnotes-api/internal/application/dto"
)

var _ analytics.ReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa analytics.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador; author se escribe en los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// GenerateAnalyticsReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateAnalyticsReport(_ context.Context, report *dto.AnalyticsReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de reparaciones", true).
		WithAuthor(nonEmpty(g.author, "repairnotes-api"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(report.Summary))
	m.AddRows(trendRows(report.Summary.RepairsTrend)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("RANKING DE EMPLEADOS (7 DÍAS)"))
	m.AddRows(tableHeaderRow("Empleado", "Notas completadas"))
	for _, p := range report.Performance {
		m.AddRows(tableRow(p.Username, strconv.FormatInt(p.CompletedCount, 10)))
	}
	if len(report.Performance) == 0 {
		m.AddRows(emptyRow())
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("DISTRIBUCIÓN DEL TIEMPO DE REPARACIÓN"))
	m.AddRows(tableHeaderRow("Rango", "Notas"))
	for _, b := range report.Distribution {
		m.AddRows(tableRow(b.Label, strconv.FormatInt(b.Count, 10)))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("SESIONES ACTIVAS"))
	m.AddRows(tableHeaderRow("Usuario", "Inicio de sesión"))
	for _, u := range report.ActiveUsers {
		m.AddRows(tableRow(u.Username, u.LoginTime.Format("02/01/2006 15:04")))
	}
	if len(report.ActiveUsers) == 0 {
		m.AddRows(emptyRow())
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y zona (izq), fecha de generación (der).
func headerRow(report *dto.AnalyticsReportDTO) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE REPARACIONES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Zona horaria: "+nonEmpty(report.Timezone, "UTC"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// kpiRow: tres indicadores del resumen.
func kpiRow(s dto.AnalyticsSummaryDTO) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: colorPrimary, Top: 7,
			}),
		)
	}
	return row.New(18).Add(
		kpi("Notas totales", strconv.FormatInt(s.TotalNotes, 10)),
		kpi("Reparaciones", strconv.FormatInt(s.TotalRepairs, 10)),
		kpi("Promedio (días)", strconv.FormatInt(s.AvgRepairTime, 10)),
	)
}

// trendRows: reparaciones cerradas por día.
func trendRows(trend []dto.DayCountDTO) []core.Row {
	rows := []core.Row{sectionTitle("REPARACIONES POR DÍA (7 DÍAS)")}
	if len(trend) == 0 {
		return append(rows, emptyRow())
	}
	rows = append(rows, tableHeaderRow("Día", "Reparaciones"))
	for _, d := range trend {
		rows = append(rows, tableRow(d.Date, strconv.FormatInt(d.Count, 10)))
	}
	return rows
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeaderRow(left, right string) core.Row {
	return row.New(7).Add(
		col.New(8).Add(text.New(left, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1})),
		col.New(4).Add(text.New(right, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func tableRow(left, right string) core.Row {
	return row.New(6).Add(
		col.New(8).Add(text.New(left, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(4).Add(text.New(right, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func emptyRow() core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("Sin datos", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

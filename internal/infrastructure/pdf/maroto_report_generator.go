// Package pdf implementa la generación del listado de trámites en PDF para
// el staff del estudio.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del estudio  │  Título del reporte + Fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Denominación | Cliente | Jurisd. | Estado | Alta    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de filas + leyenda de uso interno            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/gestorialegal/tramites-api/internal/application/usecase"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 58, Blue: 95}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.TramiteReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa usecase.TramiteReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	estudio string // Nombre del estudio para el encabezado
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator(estudio string) *MarotoReportGenerator {
	return &MarotoReportGenerator{estudio: estudio}
}

// GenerarListado genera el PDF del listado y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerarListado(titulo string, filas []repository.FilaExport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titulo, true).
		WithAuthor(g.estudio, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.estudio, titulo))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(filas) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(filas)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar listado: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del estudio (izq) y título del reporte (der).
func headerRow(estudio, titulo string) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New(estudio, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Constitución de S.A.S.", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 4,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla del listado.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Denominación", 4, align.Left),
		h("Cliente", 3, align.Left),
		h("Jurisd.", 1, align.Center),
		h("Estado", 2, align.Left),
		h("Alta", 2, align.Right),
	)
}

// tableRows: una fila por trámite.
func tableRows(filas []repository.FilaExport) []core.Row {
	result := make([]core.Row, 0, len(filas))
	for _, f := range filas {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				f.Denominacion,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				f.Cliente,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				etiquetaJurisdiccion(f.Jurisdiccion),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				f.EstadoGeneral,
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				f.CreatedAt.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRow: total y leyenda de uso interno.
func footerRow(total int) core.Row {
	return row.New(10).Add(
		col.New(6).Add(text.New(
			fmt.Sprintf("Total: %d trámites", total),
			props.Text{Style: fontstyle.Bold, Size: 8, Top: 2},
		)),
		col.New(6).Add(text.New(
			"Documento de uso interno del estudio.",
			props.Text{Size: 7, Align: align.Right, Color: colorGray, Top: 2},
		)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// etiquetaJurisdiccion abrevia la jurisdicción para la columna angosta.
func etiquetaJurisdiccion(j string) string {
	if j == "BUENOS_AIRES" {
		return "PBA"
	}
	return j
}

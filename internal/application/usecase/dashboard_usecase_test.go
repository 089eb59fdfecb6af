package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

// fakeDashRepo devuelve datos fijos para el tablero.
type fakeDashRepo struct {
	export []repository.FilaExport
}

func (f *fakeDashRepo) CountTramitesPorEstado(context.Context) ([]repository.ConteoPorClave, error) {
	return []repository.ConteoPorClave{
		{Clave: entity.EstadoIniciado, Cantidad: 3},
		{Clave: entity.EstadoEnProceso, Cantidad: 7},
	}, nil
}

func (f *fakeDashRepo) CountTramitesPorJurisdiccion(context.Context) ([]repository.ConteoPorClave, error) {
	return []repository.ConteoPorClave{
		{Clave: entity.JurisdiccionCABA, Cantidad: 6},
		{Clave: entity.JurisdiccionBuenosAires, Cantidad: 4},
	}, nil
}

func (f *fakeDashRepo) IngresosAprobadosPorMes(_ context.Context, _, _ time.Time) ([]repository.IngresoMensual, error) {
	return []repository.IngresoMensual{
		{Mes: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), Total: decimal.NewFromFloat(150000.505)},
	}, nil
}

func (f *fakeDashRepo) TramitesRecientes(context.Context, int) ([]*entity.Tramite, error) {
	return []*entity.Tramite{{ID: "t1", RazonSocial1: "Aurora Digital", CapitalSocial: decimal.Zero}}, nil
}

func (f *fakeDashRepo) CountValidacionesPendientes(context.Context) (int, error) { return 2, nil }
func (f *fakeDashRepo) CountDocumentosPendientes(context.Context) (int, error)  { return 5, nil }

func (f *fakeDashRepo) ListadoExport(context.Context, repository.TramiteFilter) ([]repository.FilaExport, error) {
	return f.export, nil
}

// fakeReportGen captura la llamada al generador de PDF.
type fakeReportGen struct {
	titulo string
	filas  int
}

func (f *fakeReportGen) GenerarListado(titulo string, filas []repository.FilaExport) ([]byte, error) {
	f.titulo = titulo
	f.filas = len(filas)
	return []byte("%PDF-fake"), nil
}

func TestResumen_ArmaElTableroCompleto(t *testing.T) {
	uc := NewDashboardUseCase(&fakeDashRepo{}, &fakeReportGen{})

	out, err := uc.Resumen(context.Background())
	require.NoError(t, err)

	assert.Len(t, out.TramitesPorEstado, 2)
	assert.Len(t, out.TramitesPorJurisdiccion, 2)
	assert.Equal(t, 2, out.ValidacionesPendientes)
	assert.Equal(t, 5, out.DocumentosPendientes)
	require.Len(t, out.IngresosPorMes, 1)
	assert.Equal(t, "2026-07", out.IngresosPorMes[0].Mes)
	assert.True(t, out.IngresosPorMes[0].Total.Equal(decimal.NewFromFloat(150000.51)),
		"los ingresos se redondean a dos decimales")
	require.Len(t, out.TramitesRecientes, 1)
	assert.Equal(t, "Aurora Digital", out.TramitesRecientes[0].RazonSocial1)
}

func TestExportCSV_GeneraEncabezadoYFilas(t *testing.T) {
	repo := &fakeDashRepo{export: []repository.FilaExport{
		{
			ID: "t1", Denominacion: "Aurora Digital", Cliente: "Ana Pérez",
			Jurisdiccion: entity.JurisdiccionCABA, EstadoGeneral: entity.EstadoEnProceso,
			EstadoValidacion: entity.ValidacionValidado,
			CreatedAt:        time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
	}}
	uc := NewDashboardUseCase(repo, &fakeReportGen{})

	data, err := uc.ExportCSV(context.Background(), repository.TramiteFilter{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,denominacion,cliente,jurisdiccion,estado_general,estado_validacion,fecha_alta", lines[0])
	assert.Contains(t, lines[1], "Aurora Digital")
	assert.Contains(t, lines[1], "2026-08-01")
}

func TestExportPDF_DelegaEnElGenerador(t *testing.T) {
	gen := &fakeReportGen{}
	repo := &fakeDashRepo{export: []repository.FilaExport{{ID: "t1"}, {ID: "t2"}}}
	uc := NewDashboardUseCase(repo, gen)

	data, err := uc.ExportPDF(context.Background(), repository.TramiteFilter{})
	require.NoError(t, err)

	assert.NotEmpty(t, data)
	assert.Equal(t, 2, gen.filas)
	assert.Contains(t, gen.titulo, "Listado de trámites")
}

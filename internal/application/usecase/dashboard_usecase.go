package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gestorialegal/tramites-api/internal/application/dto"
	"github.com/gestorialegal/tramites-api/internal/domain/entity"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

const (
	dashboardRecientes    = 5  // trámites en el widget de actividad reciente
	dashboardMesesIngreso = 12 // meses hacia atrás para la serie de ingresos
)

// DashboardUseCase arma el tablero del staff y los exports del listado.
//
// Fuente de datos: DashboardRepository (consultas read-only).
// No toca las tablas directamente; delega todo en el repositorio.
type DashboardUseCase struct {
	dashRepo repository.DashboardRepository
	reportes TramiteReportGenerator
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dashRepo repository.DashboardRepository, reportes TramiteReportGenerator) *DashboardUseCase {
	return &DashboardUseCase{dashRepo: dashRepo, reportes: reportes}
}

// Resumen construye el DashboardResponse del staff.
//
// Seis llamadas en paralelo:
//  1. CountTramitesPorEstado
//  2. CountTramitesPorJurisdiccion
//  3. IngresosAprobadosPorMes (últimos 12 meses)
//  4. TramitesRecientes (últimos 5)
//  5. CountValidacionesPendientes
//  6. CountDocumentosPendientes
func (uc *DashboardUseCase) Resumen(ctx context.Context) (*dto.DashboardResponse, error) {
	now := time.Now()
	desde := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(dashboardMesesIngreso - 1), 0)

	type conteoResult struct {
		filas []repository.ConteoPorClave
		err   error
	}
	type ingresosResult struct {
		filas []repository.IngresoMensual
		err   error
	}
	type recientesResult struct {
		tramites []*entity.Tramite
		err      error
	}
	type countResult struct {
		n   int
		err error
	}

	estadoCh := make(chan conteoResult, 1)
	jurisdCh := make(chan conteoResult, 1)
	ingresosCh := make(chan ingresosResult, 1)
	recientesCh := make(chan recientesResult, 1)
	validCh := make(chan countResult, 1)
	docsCh := make(chan countResult, 1)

	go func() {
		filas, err := uc.dashRepo.CountTramitesPorEstado(ctx)
		estadoCh <- conteoResult{filas, err}
	}()
	go func() {
		filas, err := uc.dashRepo.CountTramitesPorJurisdiccion(ctx)
		jurisdCh <- conteoResult{filas, err}
	}()
	go func() {
		filas, err := uc.dashRepo.IngresosAprobadosPorMes(ctx, desde, now)
		ingresosCh <- ingresosResult{filas, err}
	}()
	go func() {
		tramites, err := uc.dashRepo.TramitesRecientes(ctx, dashboardRecientes)
		recientesCh <- recientesResult{tramites, err}
	}()
	go func() {
		n, err := uc.dashRepo.CountValidacionesPendientes(ctx)
		validCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashRepo.CountDocumentosPendientes(ctx)
		docsCh <- countResult{n, err}
	}()

	estado := <-estadoCh
	jurisd := <-jurisdCh
	ingresos := <-ingresosCh
	recientes := <-recientesCh
	valid := <-validCh
	docs := <-docsCh

	if estado.err != nil {
		return nil, fmt.Errorf("dashboard: trámites por estado: %w", estado.err)
	}
	if jurisd.err != nil {
		return nil, fmt.Errorf("dashboard: trámites por jurisdicción: %w", jurisd.err)
	}
	if ingresos.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos por mes: %w", ingresos.err)
	}
	if recientes.err != nil {
		return nil, fmt.Errorf("dashboard: trámites recientes: %w", recientes.err)
	}
	if valid.err != nil {
		return nil, fmt.Errorf("dashboard: validaciones pendientes: %w", valid.err)
	}
	if docs.err != nil {
		return nil, fmt.Errorf("dashboard: documentos pendientes: %w", docs.err)
	}

	resp := &dto.DashboardResponse{
		TramitesPorEstado:       conteosADTO(estado.filas),
		TramitesPorJurisdiccion: conteosADTO(jurisd.filas),
		IngresosPorMes:          make([]dto.IngresoMensualDTO, 0, len(ingresos.filas)),
		ValidacionesPendientes:  valid.n,
		DocumentosPendientes:    docs.n,
		TramitesRecientes:       make([]dto.TramiteResponse, 0, len(recientes.tramites)),
	}
	for _, m := range ingresos.filas {
		resp.IngresosPorMes = append(resp.IngresosPorMes, dto.IngresoMensualDTO{
			Mes:   m.Mes.Format("2006-01"),
			Total: m.Total.Round(2),
		})
	}
	for _, t := range recientes.tramites {
		resp.TramitesRecientes = append(resp.TramitesRecientes, *ToTramiteResponse(t))
	}
	return resp, nil
}

// ExportCSV genera el listado de trámites filtrado como CSV (UTF-8, coma).
func (uc *DashboardUseCase) ExportCSV(ctx context.Context, f repository.TramiteFilter) ([]byte, error) {
	filas, err := uc.dashRepo.ListadoExport(ctx, f)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"id", "denominacion", "cliente", "jurisdiccion", "estado_general", "estado_validacion", "fecha_alta"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, fila := range filas {
		record := []string{
			fila.ID,
			fila.Denominacion,
			fila.Cliente,
			fila.Jurisdiccion,
			fila.EstadoGeneral,
			fila.EstadoValidacion,
			fila.CreatedAt.Format("2006-01-02"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportPDF genera el listado de trámites filtrado como PDF.
func (uc *DashboardUseCase) ExportPDF(ctx context.Context, f repository.TramiteFilter) ([]byte, error) {
	filas, err := uc.dashRepo.ListadoExport(ctx, f)
	if err != nil {
		return nil, err
	}
	titulo := "Listado de trámites al " + time.Now().Format("02/01/2006")
	return uc.reportes.GenerarListado(titulo, filas)
}

func conteosADTO(filas []repository.ConteoPorClave) []dto.ConteoDTO {
	out := make([]dto.ConteoDTO, 0, len(filas))
	for _, fila := range filas {
		out = append(out, dto.ConteoDTO{Clave: fila.Clave, Cantidad: fila.Cantidad})
	}
	return out
}

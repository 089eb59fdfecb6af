package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
)

// ConteoPorClave fila de agregación (clave -> cantidad).
type ConteoPorClave struct {
	Clave    string
	Cantidad int
}

// IngresoMensual ingresos aprobados agrupados por mes calendario.
type IngresoMensual struct {
	Mes   time.Time // Primer día del mes
	Total decimal.Decimal
}

// FilaExport fila plana del listado de trámites para exportar a CSV.
type FilaExport struct {
	ID               string
	Denominacion     string
	Cliente          string
	Jurisdiccion     string
	EstadoGeneral    string
	EstadoValidacion string
	CreatedAt        time.Time
}

// DashboardRepository agregaciones de solo lectura para los tableros del staff.
type DashboardRepository interface {
	CountTramitesPorEstado(ctx context.Context) ([]ConteoPorClave, error)
	CountTramitesPorJurisdiccion(ctx context.Context) ([]ConteoPorClave, error)
	IngresosAprobadosPorMes(ctx context.Context, desde, hasta time.Time) ([]IngresoMensual, error)
	TramitesRecientes(ctx context.Context, limit int) ([]*entity.Tramite, error)
	CountValidacionesPendientes(ctx context.Context) (int, error)
	CountDocumentosPendientes(ctx context.Context) (int, error)
	ListadoExport(ctx context.Context, f TramiteFilter) ([]FilaExport, error)
}

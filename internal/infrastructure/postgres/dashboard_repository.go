package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo implementación de DashboardRepository sobre PostgreSQL.
//
// Solo lectura: consultas de agregación para el tablero del staff y el export.
// No participa en transacciones, siempre va directo al pool.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador de agregaciones.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// CountTramitesPorEstado cuenta trámites agrupados por estado general.
func (r *DashboardRepo) CountTramitesPorEstado(ctx context.Context) ([]repository.ConteoPorClave, error) {
	return r.conteo(ctx, `SELECT estado_general, count(*) FROM tramites GROUP BY estado_general ORDER BY estado_general`)
}

// CountTramitesPorJurisdiccion cuenta trámites agrupados por jurisdicción.
func (r *DashboardRepo) CountTramitesPorJurisdiccion(ctx context.Context) ([]repository.ConteoPorClave, error) {
	return r.conteo(ctx, `SELECT jurisdiccion, count(*) FROM tramites GROUP BY jurisdiccion ORDER BY jurisdiccion`)
}

func (r *DashboardRepo) conteo(ctx context.Context, query string) ([]repository.ConteoPorClave, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("conteo tramites: %w", err)
	}
	defer rows.Close()
	var list []repository.ConteoPorClave
	for rows.Next() {
		var c repository.ConteoPorClave
		if err := rows.Scan(&c.Clave, &c.Cantidad); err != nil {
			return nil, fmt.Errorf("scan conteo: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// IngresosAprobadosPorMes suma los pagos APROBADOS por mes calendario.
// El mes se determina por updated_at (momento de la aprobación).
func (r *DashboardRepo) IngresosAprobadosPorMes(ctx context.Context, desde, hasta time.Time) ([]repository.IngresoMensual, error) {
	query := `
		SELECT date_trunc('month', updated_at) AS mes, COALESCE(sum(monto), 0)
		FROM pagos
		WHERE estado = 'APROBADO' AND updated_at >= $1 AND updated_at <= $2
		GROUP BY mes ORDER BY mes`
	rows, err := r.pool.Query(ctx, query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("ingresos por mes: %w", err)
	}
	defer rows.Close()
	var list []repository.IngresoMensual
	for rows.Next() {
		var m repository.IngresoMensual
		if err := rows.Scan(&m.Mes, &m.Total); err != nil {
			return nil, fmt.Errorf("scan ingreso mensual: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// TramitesRecientes devuelve los últimos trámites creados.
func (r *DashboardRepo) TramitesRecientes(ctx context.Context, limit int) ([]*entity.Tramite, error) {
	query := `SELECT ` + tramiteColumns + ` FROM tramites ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("tramites recientes: %w", err)
	}
	defer rows.Close()
	return collectTramites(rows)
}

// CountValidacionesPendientes cuenta formularios completos a la espera de
// validación del staff.
func (r *DashboardRepo) CountValidacionesPendientes(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM tramites WHERE formulario_completo = true AND estado_validacion = 'PENDIENTE'`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count validaciones pendientes: %w", err)
	}
	return count, nil
}

// CountDocumentosPendientes cuenta documentos a la espera de revisión.
func (r *DashboardRepo) CountDocumentosPendientes(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM documentos WHERE estado = 'PENDIENTE'`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count documentos pendientes: %w", err)
	}
	return count, nil
}

// ListadoExport arma las filas planas del export (CSV/PDF) con el nombre del
// cliente resuelto. Respeta los mismos filtros del listado administrativo,
// sin paginar: Limit/Offset del filtro se ignoran.
func (r *DashboardRepo) ListadoExport(ctx context.Context, f repository.TramiteFilter) ([]repository.FilaExport, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	addArg := func(clause string, value any) {
		n++
		args = append(args, value)
		where += fmt.Sprintf(clause, n)
	}
	if f.EstadoGeneral != "" {
		addArg(` AND t.estado_general = $%d`, f.EstadoGeneral)
	}
	if f.EstadoValidacion != "" {
		addArg(` AND t.estado_validacion = $%d`, f.EstadoValidacion)
	}
	if f.Jurisdiccion != "" {
		addArg(` AND t.jurisdiccion = $%d`, f.Jurisdiccion)
	}
	if f.Texto != "" {
		n++
		args = append(args, f.Texto)
		p := fmt.Sprintf("$%d", n)
		where += ` AND (t.razon_social_1 ILIKE '%' || ` + p + ` || '%'
			OR t.razon_social_2 ILIKE '%' || ` + p + ` || '%'
			OR t.razon_social_3 ILIKE '%' || ` + p + ` || '%'
			OR t.razon_social_aprobada ILIKE '%' || ` + p + ` || '%'
			OR t.cuit ILIKE '%' || ` + p + ` || '%')`
	}

	query := `
		SELECT t.id,
			CASE WHEN t.razon_social_aprobada <> '' THEN t.razon_social_aprobada ELSE t.razon_social_1 END,
			u.name, t.jurisdiccion, t.estado_general, t.estado_validacion, t.created_at
		FROM tramites t
		JOIN users u ON u.id = t.user_id` + where + `
		ORDER BY t.created_at DESC`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listado export: %w", err)
	}
	defer rows.Close()
	var list []repository.FilaExport
	for rows.Next() {
		var fila repository.FilaExport
		if err := rows.Scan(&fila.ID, &fila.Denominacion, &fila.Cliente, &fila.Jurisdiccion,
			&fila.EstadoGeneral, &fila.EstadoValidacion, &fila.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan fila export: %w", err)
		}
		list = append(list, fila)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

var _ repository.TramiteRepository = (*TramiteRepo)(nil)

// Columnas de tramites en el orden de scanTramite.
const tramiteColumns = `
	id, user_id,
	razon_social_1, razon_social_2, razon_social_3, razon_social_aprobada,
	objeto_social, domicilio_legal, capital_social, jurisdiccion,
	formulario_completo, nombre_reservado, capital_depositado, tasa_pagada,
	documentos_revisados, documentos_firmados, presentado_registro, sociedad_inscripta,
	estado_general, estado_validacion,
	cuit, numero_inscripcion, numero_resolucion, fecha_inscripcion,
	created_at, updated_at`

// TramiteRepo implementación del puerto TramiteRepository sobre PostgreSQL (usable con pool o tx).
type TramiteRepo struct {
	q Querier
}

// NewTramiteRepository construye el adaptador de persistencia para trámites. Pasar pool o tx (Querier).
func NewTramiteRepository(q Querier) *TramiteRepo {
	return &TramiteRepo{q: q}
}

// Create persiste un nuevo trámite.
func (r *TramiteRepo) Create(ctx context.Context, t *entity.Tramite) error {
	query := `
		INSERT INTO tramites (` + tramiteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.UserID,
		t.RazonSocial1, t.RazonSocial2, t.RazonSocial3, t.RazonSocialAprobada,
		t.ObjetoSocial, t.DomicilioLegal, t.CapitalSocial, t.Jurisdiccion,
		t.FormularioCompleto, t.NombreReservado, t.CapitalDepositado, t.TasaPagada,
		t.DocumentosRevisados, t.DocumentosFirmados, t.PresentadoRegistro, t.SociedadInscripta,
		t.EstadoGeneral, t.EstadoValidacion,
		t.CUIT, t.NumeroInscripcion, t.NumeroResolucion, t.FechaInscripcion,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tramite: %w", err)
	}
	return nil
}

// GetByID obtiene un trámite por ID.
func (r *TramiteRepo) GetByID(ctx context.Context, id string) (*entity.Tramite, error) {
	query := `SELECT ` + tramiteColumns + ` FROM tramites WHERE id = $1`
	t, err := scanTramite(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tramite: %w", err)
	}
	return t, nil
}

// Update actualiza un trámite existente (todos los campos mutables).
func (r *TramiteRepo) Update(ctx context.Context, t *entity.Tramite) error {
	query := `
		UPDATE tramites SET
			razon_social_1 = $2, razon_social_2 = $3, razon_social_3 = $4, razon_social_aprobada = $5,
			objeto_social = $6, domicilio_legal = $7, capital_social = $8, jurisdiccion = $9,
			formulario_completo = $10, nombre_reservado = $11, capital_depositado = $12, tasa_pagada = $13,
			documentos_revisados = $14, documentos_firmados = $15, presentado_registro = $16, sociedad_inscripta = $17,
			estado_general = $18, estado_validacion = $19,
			cuit = $20, numero_inscripcion = $21, numero_resolucion = $22, fecha_inscripcion = $23,
			updated_at = $24
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		t.ID,
		t.RazonSocial1, t.RazonSocial2, t.RazonSocial3, t.RazonSocialAprobada,
		t.ObjetoSocial, t.DomicilioLegal, t.CapitalSocial, t.Jurisdiccion,
		t.FormularioCompleto, t.NombreReservado, t.CapitalDepositado, t.TasaPagada,
		t.DocumentosRevisados, t.DocumentosFirmados, t.PresentadoRegistro, t.SociedadInscripta,
		t.EstadoGeneral, t.EstadoValidacion,
		t.CUIT, t.NumeroInscripcion, t.NumeroResolucion, t.FechaInscripcion,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tramite: %w", err)
	}
	return nil
}

// ListByUser lista los trámites de un cliente con paginación.
func (r *TramiteRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Tramite, error) {
	query := `
		SELECT ` + tramiteColumns + `
		FROM tramites WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tramites: %w", err)
	}
	defer rows.Close()
	return collectTramites(rows)
}

// Search busca trámites con los filtros del listado administrativo y devuelve
// además el total sin paginar. El filtro de texto matchea denominaciones y CUIT.
func (r *TramiteRepo) Search(ctx context.Context, f repository.TramiteFilter) ([]*entity.Tramite, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	addArg := func(clause string, value any) {
		n++
		args = append(args, value)
		where += fmt.Sprintf(clause, n)
	}
	if f.EstadoGeneral != "" {
		addArg(` AND estado_general = $%d`, f.EstadoGeneral)
	}
	if f.EstadoValidacion != "" {
		addArg(` AND estado_validacion = $%d`, f.EstadoValidacion)
	}
	if f.Jurisdiccion != "" {
		addArg(` AND jurisdiccion = $%d`, f.Jurisdiccion)
	}
	if f.Texto != "" {
		n++
		args = append(args, f.Texto)
		p := fmt.Sprintf("$%d", n)
		where += ` AND (razon_social_1 ILIKE '%' || ` + p + ` || '%'
			OR razon_social_2 ILIKE '%' || ` + p + ` || '%'
			OR razon_social_3 ILIKE '%' || ` + p + ` || '%'
			OR razon_social_aprobada ILIKE '%' || ` + p + ` || '%'
			OR cuit ILIKE '%' || ` + p + ` || '%')`
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM tramites`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tramites: %w", err)
	}

	query := `SELECT ` + tramiteColumns + ` FROM tramites` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search tramites: %w", err)
	}
	defer rows.Close()
	list, err := collectTramites(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Delete elimina un trámite por ID. Los hijos los borra el caso de uso dentro
// de la misma transacción, antes de llamar acá.
func (r *TramiteRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM tramites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tramite: %w", err)
	}
	return nil
}

func scanTramite(row pgx.Row) (*entity.Tramite, error) {
	var t entity.Tramite
	err := row.Scan(
		&t.ID, &t.UserID,
		&t.RazonSocial1, &t.RazonSocial2, &t.RazonSocial3, &t.RazonSocialAprobada,
		&t.ObjetoSocial, &t.DomicilioLegal, &t.CapitalSocial, &t.Jurisdiccion,
		&t.FormularioCompleto, &t.NombreReservado, &t.CapitalDepositado, &t.TasaPagada,
		&t.DocumentosRevisados, &t.DocumentosFirmados, &t.PresentadoRegistro, &t.SociedadInscripta,
		&t.EstadoGeneral, &t.EstadoValidacion,
		&t.CUIT, &t.NumeroInscripcion, &t.NumeroResolucion, &t.FechaInscripcion,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTramites(rows pgx.Rows) ([]*entity.Tramite, error) {
	var list []*entity.Tramite
	for rows.Next() {
		t, err := scanTramite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tramite: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

var _ repository.DocumentoRepository = (*DocumentoRepo)(nil)

// DocumentoRepo implementación del puerto DocumentoRepository sobre PostgreSQL (usable con pool o tx).
type DocumentoRepo struct {
	q Querier
}

// NewDocumentoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentoRepository(q Querier) *DocumentoRepo {
	return &DocumentoRepo{q: q}
}

// Create persiste un documento recién subido.
func (r *DocumentoRepo) Create(ctx context.Context, d *entity.Documento) error {
	query := `
		INSERT INTO documentos (id, tramite_id, user_id, tipo, nombre, url, estado, motivo_rechazo, fecha_aprobacion, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.TramiteID, d.UserID, d.Tipo, d.Nombre, d.URL, d.Estado, d.MotivoRechazo, d.FechaAprobacion, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert documento: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *DocumentoRepo) GetByID(ctx context.Context, id string) (*entity.Documento, error) {
	query := `
		SELECT id, tramite_id, user_id, tipo, nombre, url, estado, motivo_rechazo, fecha_aprobacion, created_at
		FROM documentos WHERE id = $1`
	var d entity.Documento
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.TramiteID, &d.UserID, &d.Tipo, &d.Nombre, &d.URL, &d.Estado, &d.MotivoRechazo, &d.FechaAprobacion, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento: %w", err)
	}
	return &d, nil
}

// Update actualiza el estado de revisión de un documento.
func (r *DocumentoRepo) Update(ctx context.Context, d *entity.Documento) error {
	query := `
		UPDATE documentos SET estado = $2, motivo_rechazo = $3, fecha_aprobacion = $4
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, d.ID, d.Estado, d.MotivoRechazo, d.FechaAprobacion)
	if err != nil {
		return fmt.Errorf("update documento: %w", err)
	}
	return nil
}

// ListByTramite lista los documentos de un trámite, más recientes primero.
func (r *DocumentoRepo) ListByTramite(ctx context.Context, tramiteID string) ([]*entity.Documento, error) {
	query := `
		SELECT id, tramite_id, user_id, tipo, nombre, url, estado, motivo_rechazo, fecha_aprobacion, created_at
		FROM documentos WHERE tramite_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, tramiteID)
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Documento
	for rows.Next() {
		var d entity.Documento
		if err := rows.Scan(&d.ID, &d.TramiteID, &d.UserID, &d.Tipo, &d.Nombre, &d.URL, &d.Estado, &d.MotivoRechazo, &d.FechaAprobacion, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan documento: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// DeleteByTramite borra los documentos de un trámite (cascada de eliminación).
func (r *DocumentoRepo) DeleteByTramite(ctx context.Context, tramiteID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM documentos WHERE tramite_id = $1`, tramiteID)
	if err != nil {
		return fmt.Errorf("delete documentos: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

var _ repository.EtapaHistorialRepository = (*EtapaHistorialRepo)(nil)

// EtapaHistorialRepo implementación del puerto EtapaHistorialRepository sobre PostgreSQL (usable con pool o tx).
type EtapaHistorialRepo struct {
	q Querier
}

// NewEtapaHistorialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEtapaHistorialRepository(q Querier) *EtapaHistorialRepo {
	return &EtapaHistorialRepo{q: q}
}

// Create inserta una transición de estado. Las entradas nunca se actualizan.
func (r *EtapaHistorialRepo) Create(ctx context.Context, h *entity.EtapaHistorial) error {
	query := `
		INSERT INTO etapa_historial (id, tramite_id, estado_anterior, estado_nuevo, motivo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		h.ID, h.TramiteID, h.EstadoAnterior, h.EstadoNuevo, h.Motivo, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert historial: %w", err)
	}
	return nil
}

// ListByTramite lista el historial de un trámite, más reciente primero.
func (r *EtapaHistorialRepo) ListByTramite(ctx context.Context, tramiteID string) ([]*entity.EtapaHistorial, error) {
	query := `
		SELECT id, tramite_id, estado_anterior, estado_nuevo, motivo, created_at
		FROM etapa_historial WHERE tramite_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, tramiteID)
	if err != nil {
		return nil, fmt.Errorf("list historial: %w", err)
	}
	defer rows.Close()
	var list []*entity.EtapaHistorial
	for rows.Next() {
		var h entity.EtapaHistorial
		if err := rows.Scan(&h.ID, &h.TramiteID, &h.EstadoAnterior, &h.EstadoNuevo, &h.Motivo, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan historial: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// DeleteByTramite borra el historial completo de un trámite (cascada de eliminación).
func (r *EtapaHistorialRepo) DeleteByTramite(ctx context.Context, tramiteID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM etapa_historial WHERE tramite_id = $1`, tramiteID)
	if err != nil {
		return fmt.Errorf("delete historial: %w", err)
	}
	return nil
}

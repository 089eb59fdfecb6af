package postgres

import (
	"context"
	"fmt"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

var _ repository.MensajeRepository = (*MensajeRepo)(nil)

// MensajeRepo implementación del puerto MensajeRepository sobre PostgreSQL (usable con pool o tx).
type MensajeRepo struct {
	q Querier
}

// NewMensajeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMensajeRepository(q Querier) *MensajeRepo {
	return &MensajeRepo{q: q}
}

// Create inserta un mensaje del chat.
func (r *MensajeRepo) Create(ctx context.Context, m *entity.Mensaje) error {
	query := `
		INSERT INTO mensajes (id, tramite_id, user_id, contenido, es_staff, leido, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TramiteID, m.UserID, m.Contenido, m.EsStaff, m.Leido, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert mensaje: %w", err)
	}
	return nil
}

// ListByTramite lista el hilo de un trámite en orden cronológico.
func (r *MensajeRepo) ListByTramite(ctx context.Context, tramiteID string, limit, offset int) ([]*entity.Mensaje, error) {
	query := `
		SELECT id, tramite_id, user_id, contenido, es_staff, leido, created_at
		FROM mensajes WHERE tramite_id = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tramiteID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list mensajes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Mensaje
	for rows.Next() {
		var m entity.Mensaje
		if err := rows.Scan(&m.ID, &m.TramiteID, &m.UserID, &m.Contenido, &m.EsStaff, &m.Leido, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan mensaje: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// MarcarLeidos marca leídos los mensajes de un lado de la conversación:
// delStaff=true marca los escritos por el staff (los lee el cliente) y viceversa.
func (r *MensajeRepo) MarcarLeidos(ctx context.Context, tramiteID string, delStaff bool) error {
	_, err := r.q.Exec(ctx,
		`UPDATE mensajes SET leido = true WHERE tramite_id = $1 AND es_staff = $2 AND leido = false`,
		tramiteID, delStaff,
	)
	if err != nil {
		return fmt.Errorf("marcar mensajes leidos: %w", err)
	}
	return nil
}

// DeleteByTramite borra los mensajes de un trámite (cascada de eliminación).
func (r *MensajeRepo) DeleteByTramite(ctx context.Context, tramiteID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM mensajes WHERE tramite_id = $1`, tramiteID)
	if err != nil {
		return fmt.Errorf("delete mensajes: %w", err)
	}
	return nil
}

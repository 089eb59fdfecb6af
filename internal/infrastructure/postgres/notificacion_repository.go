package postgres

import (
	"context"
	"fmt"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

var _ repository.NotificacionRepository = (*NotificacionRepo)(nil)

// NotificacionRepo implementación del puerto NotificacionRepository sobre PostgreSQL (usable con pool o tx).
type NotificacionRepo struct {
	q Querier
}

// NewNotificacionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificacionRepository(q Querier) *NotificacionRepo {
	return &NotificacionRepo{q: q}
}

// Create inserta una notificación (nace no leída).
func (r *NotificacionRepo) Create(ctx context.Context, n *entity.Notificacion) error {
	query := `
		INSERT INTO notificaciones (id, user_id, tramite_id, tipo, titulo, mensaje, link, leida, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.UserID, n.TramiteID, n.Tipo, n.Titulo, n.Mensaje, n.Link, n.Leida, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notificacion: %w", err)
	}
	return nil
}

// ListByUser lista las notificaciones de un usuario, más recientes primero.
func (r *NotificacionRepo) ListByUser(ctx context.Context, userID string, soloNoLeidas bool, limit int) ([]*entity.Notificacion, error) {
	query := `
		SELECT id, user_id, tramite_id, tipo, titulo, mensaje, link, leida, created_at
		FROM notificaciones WHERE user_id = $1`
	if soloNoLeidas {
		query += ` AND leida = false`
	}
	query += ` ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notificaciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notificacion
	for rows.Next() {
		var n entity.Notificacion
		if err := rows.Scan(&n.ID, &n.UserID, &n.TramiteID, &n.Tipo, &n.Titulo, &n.Mensaje, &n.Link, &n.Leida, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notificacion: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// CountNoLeidas cuenta las notificaciones no leídas de un usuario.
func (r *NotificacionRepo) CountNoLeidas(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM notificaciones WHERE user_id = $1 AND leida = false`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count notificaciones no leidas: %w", err)
	}
	return count, nil
}

// MarcarLeida marca como leída la notificación si pertenece al usuario.
// Devuelve las filas afectadas: 0 significa que no existe o es de otro usuario.
func (r *NotificacionRepo) MarcarLeida(ctx context.Context, id, userID string) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE notificaciones SET leida = true WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("marcar notificacion leida: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// MarcarTodasLeidas marca todas las notificaciones no leídas del usuario.
func (r *NotificacionRepo) MarcarTodasLeidas(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE notificaciones SET leida = true WHERE user_id = $1 AND leida = false`, userID,
	)
	if err != nil {
		return fmt.Errorf("marcar notificaciones leidas: %w", err)
	}
	return nil
}

// DeleteByTramite borra las notificaciones asociadas a un trámite (cascada de eliminación).
func (r *NotificacionRepo) DeleteByTramite(ctx context.Context, tramiteID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM notificaciones WHERE tramite_id = $1`, tramiteID)
	if err != nil {
		return fmt.Errorf("delete notificaciones: %w", err)
	}
	return nil
}

package repository

import (
	"context"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
)

// NotificacionRepository define el puerto de persistencia para Notificacion.
type NotificacionRepository interface {
	Create(ctx context.Context, n *entity.Notificacion) error
	ListByUser(ctx context.Context, userID string, soloNoLeidas bool, limit int) ([]*entity.Notificacion, error)
	CountNoLeidas(ctx context.Context, userID string) (int, error)
	// MarcarLeida marca como leída la notificación si pertenece al usuario.
	// Devuelve la cantidad de filas afectadas (0 = no existe o es ajena).
	MarcarLeida(ctx context.Context, id, userID string) (int64, error)
	MarcarTodasLeidas(ctx context.Context, userID string) error
	DeleteByTramite(ctx context.Context, tramiteID string) error
}

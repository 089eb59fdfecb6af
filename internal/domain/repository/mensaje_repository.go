package repository

import (
	"context"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
)

// MensajeRepository define el puerto de persistencia para Mensaje.
type MensajeRepository interface {
	Create(ctx context.Context, m *entity.Mensaje) error
	ListByTramite(ctx context.Context, tramiteID string, limit, offset int) ([]*entity.Mensaje, error)
	// MarcarLeidos marca como leídos los mensajes del otro lado de la
	// conversación: si el lector es staff, los del cliente, y viceversa.
	MarcarLeidos(ctx context.Context, tramiteID string, delStaff bool) error
	DeleteByTramite(ctx context.Context, tramiteID string) error
}

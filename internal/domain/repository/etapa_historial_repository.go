package repository

import (
	"context"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
)

// EtapaHistorialRepository define el puerto del historial de estados.
// Solo inserta y lista: las entradas nunca se modifican.
type EtapaHistorialRepository interface {
	Create(ctx context.Context, h *entity.EtapaHistorial) error
	ListByTramite(ctx context.Context, tramiteID string) ([]*entity.EtapaHistorial, error)
	DeleteByTramite(ctx context.Context, tramiteID string) error
}

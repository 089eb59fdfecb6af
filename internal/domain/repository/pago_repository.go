package repository

import (
	"context"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
)

// PagoRepository define el puerto de persistencia para Pago.
type PagoRepository interface {
	Create(ctx context.Context, p *entity.Pago) error
	GetByID(ctx context.Context, id string) (*entity.Pago, error)
	Update(ctx context.Context, p *entity.Pago) error
	ListByTramite(ctx context.Context, tramiteID string) ([]*entity.Pago, error)
	// GetPendienteByReferencia busca un pago PENDIENTE o PROCESANDO por su
	// referencia externa ("tramiteID|concepto"). Pagos ya aprobados no matchean:
	// eso evita aprobar dos veces desde el webhook.
	GetPendienteByReferencia(ctx context.Context, referencia string) (*entity.Pago, error)
	DeleteByTramite(ctx context.Context, tramiteID string) error
}

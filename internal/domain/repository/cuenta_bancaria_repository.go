package repository

import (
	"context"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
)

// CuentaBancariaRepository define el puerto de persistencia para CuentaBancaria.
type CuentaBancariaRepository interface {
	Create(ctx context.Context, c *entity.CuentaBancaria) error
	GetByTramite(ctx context.Context, tramiteID string) (*entity.CuentaBancaria, error)
	DeleteByTramite(ctx context.Context, tramiteID string) error
}

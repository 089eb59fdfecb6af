package repository

import (
	"context"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
)

// DocumentoRepository define el puerto de persistencia para Documento.
type DocumentoRepository interface {
	Create(ctx context.Context, d *entity.Documento) error
	GetByID(ctx context.Context, id string) (*entity.Documento, error)
	Update(ctx context.Context, d *entity.Documento) error
	ListByTramite(ctx context.Context, tramiteID string) ([]*entity.Documento, error)
	DeleteByTramite(ctx context.Context, tramiteID string) error
}

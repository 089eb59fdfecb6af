package repository

import (
	"context"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
)

// TramiteFilter filtros de búsqueda del listado administrativo.
type TramiteFilter struct {
	EstadoGeneral    string // Vacío = todos
	EstadoValidacion string
	Jurisdiccion     string
	Texto            string // Busca en denominaciones y CUIT (normalizado)
	Limit            int
	Offset           int
}

// TramiteRepository define el puerto de persistencia para Tramite.
type TramiteRepository interface {
	Create(ctx context.Context, t *entity.Tramite) error
	GetByID(ctx context.Context, id string) (*entity.Tramite, error)
	Update(ctx context.Context, t *entity.Tramite) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Tramite, error)
	Search(ctx context.Context, f TramiteFilter) ([]*entity.Tramite, int, error)
	Delete(ctx context.Context, id string) error
}

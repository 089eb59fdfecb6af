package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestorialegal/tramites-api/internal/domain"
	"github.com/gestorialegal/tramites-api/internal/domain/entity"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

var _ repository.CuentaBancariaRepository = (*CuentaBancariaRepo)(nil)

// CuentaBancariaRepo implementación del puerto CuentaBancariaRepository sobre PostgreSQL (usable con pool o tx).
type CuentaBancariaRepo struct {
	q Querier
}

// NewCuentaBancariaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCuentaBancariaRepository(q Querier) *CuentaBancariaRepo {
	return &CuentaBancariaRepo{q: q}
}

// Create persiste la cuenta declarada. Hay una sola por trámite (unique en tramite_id).
func (r *CuentaBancariaRepo) Create(ctx context.Context, c *entity.CuentaBancaria) error {
	query := `
		INSERT INTO cuentas_bancarias (id, tramite_id, banco, cbu, alias, titular, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.TramiteID, c.Banco, c.CBU, c.Alias, c.Titular, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cuenta bancaria: %w", err)
	}
	return nil
}

// GetByTramite obtiene la cuenta declarada para un trámite.
func (r *CuentaBancariaRepo) GetByTramite(ctx context.Context, tramiteID string) (*entity.CuentaBancaria, error) {
	query := `
		SELECT id, tramite_id, banco, cbu, alias, titular, created_at
		FROM cuentas_bancarias WHERE tramite_id = $1`
	var c entity.CuentaBancaria
	err := r.q.QueryRow(ctx, query, tramiteID).Scan(
		&c.ID, &c.TramiteID, &c.Banco, &c.CBU, &c.Alias, &c.Titular, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cuenta bancaria: %w", err)
	}
	return &c, nil
}

// DeleteByTramite borra la cuenta de un trámite (cascada de eliminación).
func (r *CuentaBancariaRepo) DeleteByTramite(ctx context.Context, tramiteID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM cuentas_bancarias WHERE tramite_id = $1`, tramiteID)
	if err != nil {
		return fmt.Errorf("delete cuenta bancaria: %w", err)
	}
	return nil
}

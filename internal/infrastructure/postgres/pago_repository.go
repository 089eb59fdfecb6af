package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

var _ repository.PagoRepository = (*PagoRepo)(nil)

// PagoRepo implementación del puerto PagoRepository sobre PostgreSQL (usable con pool o tx).
type PagoRepo struct {
	q Querier
}

// NewPagoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPagoRepository(q Querier) *PagoRepo {
	return &PagoRepo{q: q}
}

// Create persiste un nuevo pago.
func (r *PagoRepo) Create(ctx context.Context, p *entity.Pago) error {
	query := `
		INSERT INTO pagos (id, tramite_id, user_id, concepto, monto, moneda, estado, metodo, referencia_externa, comprobante_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.TramiteID, p.UserID, p.Concepto, p.Monto, p.Moneda, p.Estado, p.Metodo,
		p.ReferenciaExterna, p.ComprobanteURL, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pago: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID.
func (r *PagoRepo) GetByID(ctx context.Context, id string) (*entity.Pago, error) {
	query := `
		SELECT id, tramite_id, user_id, concepto, monto, moneda, estado, metodo, referencia_externa, comprobante_url, created_at, updated_at
		FROM pagos WHERE id = $1`
	var p entity.Pago
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.TramiteID, &p.UserID, &p.Concepto, &p.Monto, &p.Moneda, &p.Estado, &p.Metodo,
		&p.ReferenciaExterna, &p.ComprobanteURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pago: %w", err)
	}
	return &p, nil
}

// Update actualiza un pago existente.
func (r *PagoRepo) Update(ctx context.Context, p *entity.Pago) error {
	query := `
		UPDATE pagos SET estado = $2, referencia_externa = $3, comprobante_url = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, p.ID, p.Estado, p.ReferenciaExterna, p.ComprobanteURL, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update pago: %w", err)
	}
	return nil
}

// ListByTramite lista los pagos de un trámite, más recientes primero.
func (r *PagoRepo) ListByTramite(ctx context.Context, tramiteID string) ([]*entity.Pago, error) {
	query := `
		SELECT id, tramite_id, user_id, concepto, monto, moneda, estado, metodo, referencia_externa, comprobante_url, created_at, updated_at
		FROM pagos WHERE tramite_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, tramiteID)
	if err != nil {
		return nil, fmt.Errorf("list pagos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pago
	for rows.Next() {
		var p entity.Pago
		if err := rows.Scan(&p.ID, &p.TramiteID, &p.UserID, &p.Concepto, &p.Monto, &p.Moneda, &p.Estado, &p.Metodo,
			&p.ReferenciaExterna, &p.ComprobanteURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pago: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// GetPendienteByReferencia busca un pago PENDIENTE o PROCESANDO por referencia
// externa. Los aprobados no matchean: un webhook repetido no encuentra nada.
func (r *PagoRepo) GetPendienteByReferencia(ctx context.Context, referencia string) (*entity.Pago, error) {
	query := `
		SELECT id, tramite_id, user_id, concepto, monto, moneda, estado, metodo, referencia_externa, comprobante_url, created_at, updated_at
		FROM pagos
		WHERE referencia_externa = $1 AND estado IN ('PENDIENTE', 'PROCESANDO')
		ORDER BY created_at DESC LIMIT 1`
	var p entity.Pago
	err := r.q.QueryRow(ctx, query, referencia).Scan(
		&p.ID, &p.TramiteID, &p.UserID, &p.Concepto, &p.Monto, &p.Moneda, &p.Estado, &p.Metodo,
		&p.ReferenciaExterna, &p.ComprobanteURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pago by referencia: %w", err)
	}
	return &p, nil
}

// DeleteByTramite borra los pagos de un trámite (cascada de eliminación).
func (r *PagoRepo) DeleteByTramite(ctx context.Context, tramiteID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM pagos WHERE tramite_id = $1`, tramiteID)
	if err != nil {
		return fmt.Errorf("delete pagos: %w", err)
	}
	return nil
}

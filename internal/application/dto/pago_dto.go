package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePagoRequest pago iniciado por el cliente.
type CreatePagoRequest struct {
	Concepto string          `json:"concepto"`
	Monto    decimal.Decimal `json:"monto"`
	Moneda   string          `json:"moneda"`
	Metodo   string          `json:"metodo"` // TRANSFERENCIA | MERCADOPAGO
}

// CreatePagoManualRequest pago registrado por el staff (ya cobrado).
type CreatePagoManualRequest struct {
	Concepto string          `json:"concepto"`
	Monto    decimal.Decimal `json:"monto"`
	Moneda   string          `json:"moneda"`
}

// PagoResponse pago de un trámite.
type PagoResponse struct {
	ID                string          `json:"id"`
	TramiteID         string          `json:"tramite_id"`
	UserID            string          `json:"user_id"`
	Concepto          string          `json:"concepto"`
	Monto             decimal.Decimal `json:"monto"`
	Moneda            string          `json:"moneda"`
	Estado            string          `json:"estado"`
	Metodo            string          `json:"metodo"`
	ReferenciaExterna string          `json:"referencia_externa,omitempty"`
	ComprobanteURL    string          `json:"comprobante_url,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// WebhookMercadoPago cuerpo del callback del gateway. Solo se usan el tipo de
// evento y el ID del pago del proveedor; el resto se re-consulta a la API.
type WebhookMercadoPago struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

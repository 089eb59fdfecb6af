package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pago.
const (
	PagoPendiente  = "PENDIENTE"
	PagoProcesando = "PROCESANDO"
	PagoAprobado   = "APROBADO"
)

// Métodos de pago.
const (
	MetodoTransferencia = "TRANSFERENCIA"
	MetodoMercadoPago   = "MERCADOPAGO"
	MetodoManual        = "MANUAL"
)

// Conceptos de cobro del estudio.
const (
	ConceptoHonorarios        = "HONORARIOS"
	ConceptoTasaRegistral     = "TASA_REGISTRAL"
	ConceptoReservaNombre     = "RESERVA_NOMBRE"
	ConceptoPublicacionEdicto = "PUBLICACION_EDICTO"
)

// Pago pertenece a un trámite y a un usuario. Lo crea el staff (ya aprobado,
// método MANUAL) o un flujo iniciado por el cliente que arranca PENDIENTE
// (transferencia) o PROCESANDO (gateway) y pasa a APROBADO solo por el webhook
// verificado o por confirmación del staff.
type Pago struct {
	ID                string
	TramiteID         string
	UserID            string
	Concepto          string
	Monto             decimal.Decimal
	Moneda            string // ARS por defecto
	Estado            string // PENDIENTE, PROCESANDO, APROBADO
	Metodo            string // TRANSFERENCIA, MERCADOPAGO, MANUAL
	ReferenciaExterna string // "tramiteID|concepto" en el gateway
	ComprobanteURL    string // Comprobante de transferencia subido por el cliente
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReferenciaExternaDe arma la referencia externa que viaja al gateway de pagos.
func ReferenciaExternaDe(tramiteID, concepto string) string {
	return tramiteID + "|" + concepto
}

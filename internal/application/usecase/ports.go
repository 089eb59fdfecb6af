package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción. El TxRunner
// los construye sobre la tx y los pasa al callback; así cada mutador lógico
// (cambio de estado + historial + notificación) es atómico.
type Repos struct {
	Tramites       repository.TramiteRepository
	Historial      repository.EtapaHistorialRepository
	Notificaciones repository.NotificacionRepository
	Documentos     repository.DocumentoRepository
	Pagos          repository.PagoRepository
	Mensajes       repository.MensajeRepository
	Cuentas        repository.CuentaBancariaRepository
}

// TxRunner ejecuta fn dentro de una transacción: commit si devuelve nil,
// rollback si devuelve error.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// FileStorage puerto de salida hacia el object storage. Una falla de subida
// aborta la operación que la pidió.
type FileStorage interface {
	Upload(ctx context.Context, data []byte, folder, filename, contentType string) (string, error)
}

// EmailSender puerto de salida para emails transaccionales. Los casos de uso
// lo invocan después del commit y tratan la falla como no crítica: se loguea
// y la operación principal igual reporta éxito.
type EmailSender interface {
	Send(to, subject, body string) error
}

// TramiteReportGenerator puerto de salida para el reporte PDF del listado de
// trámites del staff.
type TramiteReportGenerator interface {
	GenerarListado(titulo string, filas []repository.FilaExport) ([]byte, error)
}

// ProviderPayment estado autoritativo de un pago según el gateway.
type ProviderPayment struct {
	ID                string
	Status            string // approved, pending, rejected, ...
	ExternalReference string // "tramiteID|concepto"
	TransactionAmount decimal.Decimal
}

// PaymentProvider puerto de salida hacia el gateway de pagos. El webhook nunca
// confía en su propio cuerpo: siempre re-consulta por acá.
type PaymentProvider interface {
	GetPayment(ctx context.Context, id string) (*ProviderPayment, error)
}

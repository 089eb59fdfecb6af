package entity

import "time"

// Estados del ciclo de vida de un documento.
const (
	DocPendiente = "PENDIENTE"
	DocAprobado  = "APROBADO"
	DocRechazado = "RECHAZADO"
)

// Tipos de documento habituales del trámite.
const (
	DocTipoDNI                  = "DNI"
	DocTipoEstatuto             = "ESTATUTO"
	DocTipoComprobanteDeposito  = "COMPROBANTE_DEPOSITO"
	DocTipoConstanciaInscripcion = "CONSTANCIA_INSCRIPCION"
	DocTipoOtro                 = "OTRO"
)

// Documento pertenece a un trámite y al usuario que lo subió.
// Transiciona a APROBADO o RECHAZADO exactamente una vez por acción del staff;
// el rechazo exige un motivo y dispara una notificación al dueño.
type Documento struct {
	ID              string
	TramiteID       string
	UserID          string
	Tipo            string
	Nombre          string // Nombre original del archivo
	URL             string // URL pública en el storage
	Estado          string // PENDIENTE, APROBADO, RECHAZADO
	MotivoRechazo   string
	FechaAprobacion *time.Time
	CreatedAt       time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados generales de un trámite de constitución.
const (
	EstadoIniciado            = "INICIADO"
	EstadoEnProceso           = "EN_PROCESO"
	EstadoEsperandoCliente    = "ESPERANDO_CLIENTE"
	EstadoEsperandoAprobacion = "ESPERANDO_APROBACION"
	EstadoCompletado          = "COMPLETADO"
	EstadoCancelado           = "CANCELADO"
)

// Estados de validación del formulario de alta.
const (
	ValidacionPendiente          = "PENDIENTE"
	ValidacionValidado           = "VALIDADO"
	ValidacionRequiereCorreccion = "REQUIERE_CORRECCION"
)

// Jurisdicciones soportadas por el estudio.
const (
	JurisdiccionCABA        = "CABA"         // Inspección General de Justicia
	JurisdiccionBuenosAires = "BUENOS_AIRES" // Dirección Provincial de Personas Jurídicas
)

// Tramite representa una constitución de S.A.S.: un expediente por cliente.
//
// Las ocho etapas son flags independientes; el avance y el estado visible se
// derivan de ellas en internal/domain/tramite (nunca se almacenan redundantes).
type Tramite struct {
	ID     string
	UserID string // Cliente dueño del expediente

	// Denominación social: hasta tres alternativas propuestas por el cliente
	// más la aprobada por el registro (puede ser una contrapropuesta).
	RazonSocial1        string
	RazonSocial2        string
	RazonSocial3        string
	RazonSocialAprobada string

	ObjetoSocial   string
	DomicilioLegal string
	CapitalSocial  decimal.Decimal
	Jurisdiccion   string // CABA | BUENOS_AIRES

	// Etapas del trámite, en orden del flujo registral.
	FormularioCompleto  bool
	NombreReservado     bool
	CapitalDepositado   bool
	TasaPagada          bool
	DocumentosRevisados bool
	DocumentosFirmados  bool
	PresentadoRegistro  bool
	SociedadInscripta   bool

	EstadoGeneral    string // INICIADO, EN_PROCESO, ESPERANDO_CLIENTE, ESPERANDO_APROBACION, COMPLETADO, CANCELADO
	EstadoValidacion string // PENDIENTE, VALIDADO, REQUIERE_CORRECCION

	// Datos registrales finales: presentes todos juntos o ninguno.
	CUIT              string
	NumeroInscripcion string
	NumeroResolucion  string
	FechaInscripcion  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NombreVigente devuelve la denominación a mostrar: la aprobada si existe,
// si no la primera alternativa propuesta.
func (t *Tramite) NombreVigente() string {
	if t.RazonSocialAprobada != "" {
		return t.RazonSocialAprobada
	}
	return t.RazonSocial1
}

// TieneDatosFinales indica si los cuatro datos registrales están completos.
func (t *Tramite) TieneDatosFinales() bool {
	return t.CUIT != "" && t.NumeroInscripcion != "" && t.NumeroResolucion != "" && t.FechaInscripcion != nil
}

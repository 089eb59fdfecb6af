package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTramiteRequest alta de un expediente de constitución.
type CreateTramiteRequest struct {
	RazonSocial1   string          `json:"razon_social_1"`
	RazonSocial2   string          `json:"razon_social_2"`
	RazonSocial3   string          `json:"razon_social_3"`
	ObjetoSocial   string          `json:"objeto_social"`
	DomicilioLegal string          `json:"domicilio_legal"`
	CapitalSocial  decimal.Decimal `json:"capital_social"`
	Jurisdiccion   string          `json:"jurisdiccion"`
}

// FormularioRequest actualización del formulario de alta (multi-paso).
// Los punteros distinguen "no enviado" de "enviado vacío": cada paso del
// frontend manda solo sus campos.
type FormularioRequest struct {
	RazonSocial1   *string          `json:"razon_social_1"`
	RazonSocial2   *string          `json:"razon_social_2"`
	RazonSocial3   *string          `json:"razon_social_3"`
	ObjetoSocial   *string          `json:"objeto_social"`
	DomicilioLegal *string          `json:"domicilio_legal"`
	CapitalSocial  *decimal.Decimal `json:"capital_social"`
	Jurisdiccion   *string          `json:"jurisdiccion"`
	Completo       bool             `json:"completo"` // true en el último paso
}

// CambioEstadoRequest cambio de estado general (staff).
type CambioEstadoRequest struct {
	Estado string `json:"estado"`
	Motivo string `json:"motivo"`
}

// CambioEtapaRequest marca o desmarca una etapa puntual (staff).
type CambioEtapaRequest struct {
	Etapa string `json:"etapa"`
	Valor bool   `json:"valor"`
}

// ValidacionRequest veredicto del staff sobre el formulario.
type ValidacionRequest struct {
	Resultado string `json:"resultado"` // VALIDADO | REQUIERE_CORRECCION
	Motivo    string `json:"motivo"`
}

// AprobarNombreRequest aprobación de la denominación social.
type AprobarNombreRequest struct {
	Nombre string `json:"nombre"`
}

// InscripcionRequest datos registrales finales. El archivo de la constancia
// viaja aparte como multipart.
type InscripcionRequest struct {
	CUIT              string `form:"cuit"`
	NumeroInscripcion string `form:"numero_inscripcion"`
	NumeroResolucion  string `form:"numero_resolucion"`
	FechaInscripcion  string `form:"fecha_inscripcion"` // YYYY-MM-DD
}

// CuentaBancariaRequest cuenta declarada para el depósito de capital.
type CuentaBancariaRequest struct {
	Banco   string `json:"banco"`
	CBU     string `json:"cbu"`
	Alias   string `json:"alias"`
	Titular string `json:"titular"`
}

// TramiteResponse expediente con sus proyecciones derivadas.
type TramiteResponse struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"user_id"`
	RazonSocial1        string          `json:"razon_social_1"`
	RazonSocial2        string          `json:"razon_social_2,omitempty"`
	RazonSocial3        string          `json:"razon_social_3,omitempty"`
	RazonSocialAprobada string          `json:"razon_social_aprobada,omitempty"`
	ObjetoSocial        string          `json:"objeto_social,omitempty"`
	DomicilioLegal      string          `json:"domicilio_legal,omitempty"`
	CapitalSocial       decimal.Decimal `json:"capital_social"`
	Jurisdiccion        string          `json:"jurisdiccion"`

	Etapas map[string]bool `json:"etapas"`

	EstadoGeneral    string `json:"estado_general"`
	EstadoValidacion string `json:"estado_validacion"`

	// Proyecciones derivadas (nunca almacenadas).
	Progreso      int    `json:"progreso"`
	EstadoVisible string `json:"estado_visible"`
	EtapaActual   string `json:"etapa_actual"`

	CUIT              string     `json:"cuit,omitempty"`
	NumeroInscripcion string     `json:"numero_inscripcion,omitempty"`
	NumeroResolucion  string     `json:"numero_resolucion,omitempty"`
	FechaInscripcion  *time.Time `json:"fecha_inscripcion,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TramiteListResponse listado paginado.
type TramiteListResponse struct {
	Items []TramiteResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// HistorialResponse entrada del historial de estados.
type HistorialResponse struct {
	ID             string    `json:"id"`
	EstadoAnterior string    `json:"estado_anterior"`
	EstadoNuevo    string    `json:"estado_nuevo"`
	Motivo         string    `json:"motivo,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

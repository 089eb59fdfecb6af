package dto

import "time"

// RevisionDocumentoRequest veredicto del staff sobre un documento.
type RevisionDocumentoRequest struct {
	Estado string `json:"estado"` // APROBADO | RECHAZADO
	Motivo string `json:"motivo"` // Obligatorio si RECHAZADO
}

// DocumentoResponse documento subido a un trámite.
type DocumentoResponse struct {
	ID              string     `json:"id"`
	TramiteID       string     `json:"tramite_id"`
	UserID          string     `json:"user_id"`
	Tipo            string     `json:"tipo"`
	Nombre          string     `json:"nombre"`
	URL             string     `json:"url"`
	Estado          string     `json:"estado"`
	MotivoRechazo   string     `json:"motivo_rechazo,omitempty"`
	FechaAprobacion *time.Time `json:"fecha_aprobacion,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

package dto

import "time"

// CreateMensajeRequest mensaje del chat del trámite.
type CreateMensajeRequest struct {
	Contenido string `json:"contenido"`
}

// MensajeResponse mensaje del chat.
type MensajeResponse struct {
	ID        string    `json:"id"`
	TramiteID string    `json:"tramite_id"`
	UserID    string    `json:"user_id"`
	Contenido string    `json:"contenido"`
	EsStaff   bool      `json:"es_staff"`
	Leido     bool      `json:"leido"`
	CreatedAt time.Time `json:"created_at"`
}

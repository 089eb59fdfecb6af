package dto

import "time"

// NotificacionResponse notificación in-app.
type NotificacionResponse struct {
	ID        string    `json:"id"`
	TramiteID string    `json:"tramite_id,omitempty"`
	Tipo      string    `json:"tipo"`
	Titulo    string    `json:"titulo"`
	Mensaje   string    `json:"mensaje"`
	Link      string    `json:"link,omitempty"`
	Leida     bool      `json:"leida"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificacionSnapshot evento periódico del stream SSE.
type NotificacionSnapshot struct {
	NoLeidas  int                    `json:"no_leidas"`
	Recientes []NotificacionResponse `json:"recientes"`
}

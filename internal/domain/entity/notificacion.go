package entity

import "time"

// Tipos de notificación.
const (
	NotifInfo            = "INFO"
	NotifExito           = "EXITO"
	NotifAlerta          = "ALERTA"
	NotifError           = "ERROR"
	NotifAccionRequerida = "ACCION_REQUERIDA"
	NotifMensaje         = "MENSAJE"
)

// Notificacion está dirigida a exactamente un usuario, opcionalmente asociada
// a un trámite. Se crea no leída; solo la mutan las operaciones de marcar leída.
type Notificacion struct {
	ID        string
	UserID    string
	TramiteID string // Opcional: vacío si no refiere a un trámite
	Tipo      string
	Titulo    string
	Mensaje   string
	Link      string // Opcional: deep link del frontend (ej. "/tramites/{id}")
	Leida     bool
	CreatedAt time.Time
}

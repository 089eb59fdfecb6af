package entity

import "time"

// Mensaje del chat entre cliente y staff dentro de un trámite.
// Leido significa "leído por la otra parte": los mensajes del cliente los
// marca leídos el staff y viceversa.
type Mensaje struct {
	ID        string
	TramiteID string
	UserID    string
	Contenido string
	EsStaff   bool
	Leido     bool
	CreatedAt time.Time
}

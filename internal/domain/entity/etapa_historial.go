package entity

import "time"

// EtapaHistorial registra una transición de estado general de un trámite.
// Es append-only: nunca se actualiza ni se borra una entrada, solo se agregan
// (la única excepción es la eliminación en cascada del trámite completo).
type EtapaHistorial struct {
	ID             string
	TramiteID      string
	EstadoAnterior string
	EstadoNuevo    string
	Motivo         string // Texto libre: quién/por qué cambió el estado
	CreatedAt      time.Time
}

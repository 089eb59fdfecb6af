package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
)

// NuevaNotificacion arma una notificación no leída lista para persistir.
func NuevaNotificacion(userID, tramiteID, tipo, titulo, mensaje, link string) *entity.Notificacion {
	return &entity.Notificacion{
		ID:        uuid.New().String(),
		UserID:    userID,
		TramiteID: tramiteID,
		Tipo:      tipo,
		Titulo:    titulo,
		Mensaje:   mensaje,
		Link:      link,
		Leida:     false,
		CreatedAt: time.Now(),
	}
}

// enviarEmail dispara un email transaccional después del commit. Política
// explícita de mejor esfuerzo: una falla se loguea y se descarta, nunca
// revierte ni hace fallar la operación que la originó.
func enviarEmail(sender EmailSender, to, subject, body string) {
	if sender == nil || to == "" {
		return
	}
	if err := sender.Send(to, subject, body); err != nil {
		log.Warn().Err(err).Str("to", to).Str("subject", subject).Msg("email no crítico falló, se descarta")
	}
}

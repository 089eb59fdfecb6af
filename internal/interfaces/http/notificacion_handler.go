package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/gestorialegal/tramites-api/internal/application/dto"
	"github.com/gestorialegal/tramites-api/internal/application/usecase"
	"github.com/gestorialegal/tramites-api/pkg/config"
)

// NotificacionHandler maneja las notificaciones del caller y su stream SSE.
type NotificacionHandler struct {
	uc     *usecase.NotificacionUseCase
	stream config.StreamConfig
}

// NewNotificacionHandler construye el handler.
func NewNotificacionHandler(uc *usecase.NotificacionUseCase, stream config.StreamConfig) *NotificacionHandler {
	return &NotificacionHandler{uc: uc, stream: stream}
}

// List godoc
// @Summary      Listar mis notificaciones
// @Tags         notificaciones
// @Produce      json
// @Param        no_leidas  query  bool  false  "solo no leídas"
// @Success      200  {array}  dto.NotificacionResponse
// @Router       /api/notificaciones [get]
func (h *NotificacionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Listar(c.Context(), GetUserID(c), c.QueryBool("no_leidas"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarcarLeida godoc
// @Summary      Marcar una notificación como leída
// @Tags         notificaciones
// @Produce      json
// @Param        id  path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.OkResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notificaciones/{id}/lectura [put]
func (h *NotificacionHandler) MarcarLeida(c *fiber.Ctx) error {
	if err := h.uc.MarcarLeida(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// MarcarTodasLeidas godoc
// @Summary      Marcar todas mis notificaciones como leídas
// @Tags         notificaciones
// @Produce      json
// @Success      200  {object}  dto.OkResponse
// @Router       /api/notificaciones/lectura [put]
func (h *NotificacionHandler) MarcarTodasLeidas(c *fiber.Ctx) error {
	if err := h.uc.MarcarTodasLeidas(c.Context(), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// Stream godoc
// @Summary      Stream SSE de notificaciones
// @Description  Emite un evento "connected", un snapshot inmediato y luego uno
//               por intervalo configurado. La conexión se corta al alcanzar la
//               vida máxima; el cliente debe reconectar.
// @Tags         notificaciones
// @Produce      text/event-stream
// @Router       /api/notificaciones/stream [get]
func (h *NotificacionHandler) Stream(c *fiber.Ctx) error {
	userID := GetUserID(c)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	uc := h.uc
	interval := h.stream.Interval
	deadline := time.Now().Add(h.stream.MaxLifetime)

	// El writer corre después de que el handler retorna: no puede usar c ni
	// el contexto del request.
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		if err := escribirEvento(w, "connected", []byte("{}")); err != nil {
			return
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if err := emitirSnapshot(w, uc, userID); err != nil {
				// Cliente desconectado: se cierra el stream.
				log.Debug().Err(err).Str("user_id", userID).Msg("stream de notificaciones cerrado")
				return
			}
			if time.Now().After(deadline) {
				return
			}
			<-ticker.C
		}
	}))
	return nil
}

// emitirSnapshot empuja el snapshot del usuario al stream. Una falla de
// lectura no corta la conexión: se saltea ese tick y se reintenta en el
// siguiente. Solo una falla de escritura hacia el cliente devuelve error.
func emitirSnapshot(w *bufio.Writer, uc *usecase.NotificacionUseCase, userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	snap, err := uc.Snapshot(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo leer el snapshot de notificaciones")
		return nil
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo serializar el snapshot de notificaciones")
		return nil
	}
	return escribirEvento(w, "notificaciones", payload)
}

// escribirEvento escribe un frame SSE y lo despacha al cliente.
func escribirEvento(w *bufio.Writer, evento string, data []byte) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evento, data); err != nil {
		return err
	}
	return w.Flush()
}

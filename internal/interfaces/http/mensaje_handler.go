package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorialegal/tramites-api/internal/application/dto"
	"github.com/gestorialegal/tramites-api/internal/application/usecase"
)

// MensajeHandler maneja el chat del trámite.
type MensajeHandler struct {
	uc *usecase.MensajeUseCase
}

// NewMensajeHandler construye el handler.
func NewMensajeHandler(uc *usecase.MensajeUseCase) *MensajeHandler {
	return &MensajeHandler{uc: uc}
}

// Enviar godoc
// @Summary      Enviar un mensaje en el trámite
// @Tags         mensajes
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del trámite"
// @Param        body  body  dto.CreateMensajeRequest  true  "contenido"
// @Success      201   {object}  dto.MensajeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tramites/{id}/mensajes [post]
func (h *MensajeHandler) Enviar(c *fiber.Ctx) error {
	var in dto.CreateMensajeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Enviar(c.Context(), GetUserID(c), EsStaff(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar el hilo de mensajes del trámite
// @Tags         mensajes
// @Produce      json
// @Param        id  path  string  true  "ID del trámite"
// @Success      200  {array}  dto.MensajeResponse
// @Router       /api/tramites/{id}/mensajes [get]
func (h *MensajeHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListByTramite(c.Context(), GetUserID(c), EsStaff(c), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarcarLeidos godoc
// @Summary      Marcar leídos los mensajes de la otra parte
// @Tags         mensajes
// @Produce      json
// @Param        id  path  string  true  "ID del trámite"
// @Success      200  {object}  dto.OkResponse
// @Router       /api/tramites/{id}/mensajes/lectura [put]
func (h *MensajeHandler) MarcarLeidos(c *fiber.Ctx) error {
	if err := h.uc.MarcarLeidos(c.Context(), GetUserID(c), EsStaff(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

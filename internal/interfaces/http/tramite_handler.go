package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorialegal/tramites-api/internal/application/dto"
	"github.com/gestorialegal/tramites-api/internal/application/usecase"
)

// TramiteHandler maneja las rutas del cliente sobre su propio expediente.
type TramiteHandler struct {
	uc *usecase.TramiteUseCase
}

// NewTramiteHandler construye el handler.
func NewTramiteHandler(uc *usecase.TramiteUseCase) *TramiteHandler {
	return &TramiteHandler{uc: uc}
}

// Create godoc
// @Summary      Iniciar un trámite de constitución
// @Tags         tramites
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTramiteRequest  true  "datos iniciales"
// @Success      201   {object}  dto.TramiteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tramites [post]
func (h *TramiteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTramiteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar mis trámites
// @Tags         tramites
// @Produce      json
// @Param        limit   query  int  false  "por página (default 20, max 100)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.TramiteListResponse
// @Router       /api/tramites [get]
func (h *TramiteHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListByUser(c.Context(), GetUserID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de un trámite
// @Tags         tramites
// @Produce      json
// @Param        id  path  string  true  "ID del trámite"
// @Success      200  {object}  dto.TramiteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tramites/{id} [get]
func (h *TramiteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetUserID(c), EsStaff(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Historial godoc
// @Summary      Historial de estados del trámite
// @Tags         tramites
// @Produce      json
// @Param        id  path  string  true  "ID del trámite"
// @Success      200  {array}  dto.HistorialResponse
// @Router       /api/tramites/{id}/historial [get]
func (h *TramiteHandler) Historial(c *fiber.Ctx) error {
	out, err := h.uc.Historial(c.Context(), GetUserID(c), EsStaff(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ActualizarFormulario godoc
// @Summary      Guardar un paso del formulario de alta
// @Description  Los campos son opcionales: cada paso manda solo los suyos.
//               Con completo=true se cierra el formulario y pasa a validación.
// @Tags         tramites
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del trámite"
// @Param        body  body  dto.FormularioRequest  true  "campos del paso"
// @Success      200   {object}  dto.TramiteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tramites/{id}/formulario [put]
func (h *TramiteHandler) ActualizarFormulario(c *fiber.Ctx) error {
	var in dto.FormularioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ActualizarFormulario(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CrearCuentaBancaria godoc
// @Summary      Declarar la cuenta del depósito de capital
// @Tags         tramites
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del trámite"
// @Param        body  body  dto.CuentaBancariaRequest  true  "datos de la cuenta"
// @Success      201   {object}  dto.OkResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tramites/{id}/cuenta-bancaria [post]
func (h *TramiteHandler) CrearCuentaBancaria(c *fiber.Ctx) error {
	var in dto.CuentaBancariaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.CrearCuentaBancaria(c.Context(), GetUserID(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OkResponse{Ok: true})
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/gestorialegal/tramites-api/internal/application/dto"
	"github.com/gestorialegal/tramites-api/internal/application/usecase"
)

// PagoHandler maneja los pagos del trámite.
type PagoHandler struct {
	uc *usecase.PagoUseCase
}

// NewPagoHandler construye el handler.
func NewPagoHandler(uc *usecase.PagoUseCase) *PagoHandler {
	return &PagoHandler{uc: uc}
}

// Crear godoc
// @Summary      Iniciar un pago
// @Description  Multipart: concepto, monto, metodo (TRANSFERENCIA o
//               MERCADOPAGO) y, para transferencias, el comprobante opcional
//               en el campo "comprobante".
// @Tags         pagos
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path  string  true  "ID del trámite"
// @Success      201  {object}  dto.PagoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tramites/{id}/pagos [post]
func (h *PagoHandler) Crear(c *fiber.Ctx) error {
	monto, err := decimal.NewFromString(c.FormValue("monto"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "monto inválido"})
	}
	in := dto.CreatePagoRequest{
		Concepto: c.FormValue("concepto"),
		Monto:    monto,
		Moneda:   c.FormValue("moneda"),
		Metodo:   c.FormValue("metodo"),
	}

	var comprobante []byte
	var nombre, contentType string
	if fh, err := c.FormFile("comprobante"); err == nil {
		comprobante, contentType, err = leerArchivo(fh)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el comprobante"})
		}
		nombre = fh.Filename
	}

	out, err := h.uc.Crear(c.Context(), GetUserID(c), c.Params("id"), in, comprobante, nombre, contentType)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pagos del trámite
// @Tags         pagos
// @Produce      json
// @Param        id  path  string  true  "ID del trámite"
// @Success      200  {array}  dto.PagoResponse
// @Router       /api/tramites/{id}/pagos [get]
func (h *PagoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListByTramite(c.Context(), GetUserID(c), EsStaff(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CrearManual godoc
// @Summary      Registrar un pago ya cobrado (staff)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del trámite"
// @Param        body  body  dto.CreatePagoManualRequest true  "concepto y monto"
// @Success      201   {object}  dto.PagoResponse
// @Router       /api/admin/tramites/{id}/pagos [post]
func (h *PagoHandler) CrearManual(c *fiber.Ctx) error {
	var in dto.CreatePagoManualRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CrearManual(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ConfirmarTransferencia godoc
// @Summary      Confirmar un pago por transferencia (staff)
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "ID del pago"
// @Success      200  {object}  dto.PagoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/pagos/{id}/confirmacion [put]
func (h *PagoHandler) ConfirmarTransferencia(c *fiber.Ctx) error {
	out, err := h.uc.ConfirmarTransferencia(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

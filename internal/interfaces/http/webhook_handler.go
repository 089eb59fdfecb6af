package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/gestorialegal/tramites-api/internal/application/dto"
	"github.com/gestorialegal/tramites-api/internal/application/usecase"
	"github.com/gestorialegal/tramites-api/internal/domain"
	"github.com/gestorialegal/tramites-api/internal/infrastructure/mercadopago"
)

// WebhookHandler recibe los callbacks del gateway de pagos.
type WebhookHandler struct {
	pagoUC        *usecase.PagoUseCase
	webhookSecret string
}

// NewWebhookHandler construye el handler.
func NewWebhookHandler(pagoUC *usecase.PagoUseCase, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{pagoUC: pagoUC, webhookSecret: webhookSecret}
}

// MercadoPago godoc
// @Summary      Webhook de Mercado Pago
// @Description  Verifica la firma x-signature y procesa eventos de pago.
//               Del cuerpo solo se usa data.id: el estado se re-consulta a la
//               API del gateway antes de aprobar nada.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.OkResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/webhooks/mercadopago [post]
func (h *WebhookHandler) MercadoPago(c *fiber.Ctx) error {
	var in dto.WebhookMercadoPago
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	if err := mercadopago.VerifyWebhookSignature(
		h.webhookSecret, c.Get("x-signature"), c.Get("x-request-id"), in.Data.ID,
	); err != nil {
		log.Warn().Err(err).Str("data_id", in.Data.ID).Msg("webhook con firma inválida")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma inválida"})
	}

	// Solo interesan eventos de pago; el resto se responde 200 para que el
	// gateway no reintente.
	if in.Type != "payment" {
		return c.JSON(dto.OkResponse{Ok: true})
	}

	err := h.pagoUC.ProcesarWebhook(c.Context(), in.Data.ID)
	switch {
	case err == nil:
		return c.JSON(dto.OkResponse{Ok: true})
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrNotFound):
		// Nada que aprobar (pago no aprobado en el gateway, referencia
		// desconocida o ya procesado). Se responde 200: reintentar no cambia nada.
		return c.JSON(dto.OkResponse{Ok: true})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data.id requerido"})
	default:
		// Falla transitoria (gateway o DB): 500 para que el gateway reintente.
		log.Error().Err(err).Str("data_id", in.Data.ID).Msg("error procesando webhook")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error procesando webhook"})
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorialegal/tramites-api/internal/application/dto"
	"github.com/gestorialegal/tramites-api/internal/application/usecase"
)

// DocumentoHandler maneja la subida y revisión de documentos.
type DocumentoHandler struct {
	uc *usecase.DocumentoUseCase
}

// NewDocumentoHandler construye el handler.
func NewDocumentoHandler(uc *usecase.DocumentoUseCase) *DocumentoHandler {
	return &DocumentoHandler{uc: uc}
}

// Subir godoc
// @Summary      Subir un documento al trámite
// @Tags         documentos
// @Accept       multipart/form-data
// @Produce      json
// @Param        id       path      string  true   "ID del trámite"
// @Param        archivo  formData  file    true   "archivo a subir"
// @Param        tipo     formData  string  false  "tipo de documento"
// @Success      201  {object}  dto.DocumentoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tramites/{id}/documentos [post]
func (h *DocumentoHandler) Subir(c *fiber.Ctx) error {
	fh, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo requerido"})
	}
	data, contentType, err := leerArchivo(fh)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	out, err := h.uc.Subir(c.Context(), GetUserID(c), EsStaff(c), c.Params("id"), c.FormValue("tipo"), data, fh.Filename, contentType)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar documentos del trámite
// @Tags         documentos
// @Produce      json
// @Param        id  path  string  true  "ID del trámite"
// @Success      200  {array}  dto.DocumentoResponse
// @Router       /api/tramites/{id}/documentos [get]
func (h *DocumentoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListByTramite(c.Context(), GetUserID(c), EsStaff(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Revisar godoc
// @Summary      Aprobar o rechazar un documento
// @Description  El rechazo exige motivo. Cada documento se resuelve una vez.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del documento"
// @Param        body  body  dto.RevisionDocumentoRequest  true  "veredicto"
// @Success      200   {object}  dto.DocumentoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/documentos/{id}/revision [put]
func (h *DocumentoHandler) Revisar(c *fiber.Ctx) error {
	var in dto.RevisionDocumentoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Revisar(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/gestorialegal/tramites-api/internal/application/dto"
	"github.com/gestorialegal/tramites-api/internal/application/usecase"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

// AdminTramiteHandler maneja las mutaciones del staff sobre los expedientes.
type AdminTramiteHandler struct {
	uc *usecase.AdminTramiteUseCase
}

// NewAdminTramiteHandler construye el handler.
func NewAdminTramiteHandler(uc *usecase.AdminTramiteUseCase) *AdminTramiteHandler {
	return &AdminTramiteHandler{uc: uc}
}

// filtroDesdeQuery arma el filtro del listado administrativo desde la query string.
func filtroDesdeQuery(c *fiber.Ctx) repository.TramiteFilter {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	return repository.TramiteFilter{
		EstadoGeneral:    c.Query("estado"),
		EstadoValidacion: c.Query("validacion"),
		Jurisdiccion:     c.Query("jurisdiccion"),
		Texto:            c.Query("q"),
		Limit:            page.Limit,
		Offset:           page.Offset,
	}
}

// leerArchivo lee el contenido de un archivo multipart.
func leerArchivo(fh *multipart.FileHeader) ([]byte, string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Header.Get("Content-Type"), nil
}

// Buscar godoc
// @Summary      Listado administrativo de trámites
// @Tags         admin
// @Produce      json
// @Param        estado        query  string  false  "estado general"
// @Param        validacion    query  string  false  "estado de validación"
// @Param        jurisdiccion  query  string  false  "CABA o BUENOS_AIRES"
// @Param        q             query  string  false  "texto en denominaciones o CUIT"
// @Success      200  {object}  dto.TramiteListResponse
// @Router       /api/admin/tramites [get]
func (h *AdminTramiteHandler) Buscar(c *fiber.Ctx) error {
	out, err := h.uc.Buscar(c.Context(), filtroDesdeQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CambiarEstado godoc
// @Summary      Cambiar el estado general de un trámite
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del trámite"
// @Param        body  body  dto.CambioEstadoRequest  true  "estado y motivo"
// @Success      200   {object}  dto.OkResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/tramites/{id}/estado [put]
func (h *AdminTramiteHandler) CambiarEstado(c *fiber.Ctx) error {
	var in dto.CambioEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.CambiarEstado(c.Context(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// CambiarEtapa godoc
// @Summary      Marcar o desmarcar una etapa del trámite
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del trámite"
// @Param        body  body  dto.CambioEtapaRequest  true  "clave de etapa y valor"
// @Success      200   {object}  dto.TramiteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/tramites/{id}/etapa [put]
func (h *AdminTramiteHandler) CambiarEtapa(c *fiber.Ctx) error {
	var in dto.CambioEtapaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CambiarEtapa(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Validar godoc
// @Summary      Registrar el veredicto de validación del formulario
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del trámite"
// @Param        body  body  dto.ValidacionRequest  true  "VALIDADO o REQUIERE_CORRECCION + motivo"
// @Success      200   {object}  dto.OkResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/tramites/{id}/validacion [put]
func (h *AdminTramiteHandler) Validar(c *fiber.Ctx) error {
	var in dto.ValidacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Validar(c.Context(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// AprobarNombre godoc
// @Summary      Aprobar la denominación social
// @Description  El nombre debe coincidir con alguna alternativa propuesta
//               (normalizado) o registrarse como contrapropuesta del registro.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del trámite"
// @Param        body  body  dto.AprobarNombreRequest  true  "denominación aprobada"
// @Success      200   {object}  dto.TramiteResponse
// @Router       /api/admin/tramites/{id}/nombre [put]
func (h *AdminTramiteHandler) AprobarNombre(c *fiber.Ctx) error {
	var in dto.AprobarNombreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AprobarNombre(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegistrarInscripcion godoc
// @Summary      Registrar la inscripción definitiva
// @Description  Multipart: los cuatro datos registrales más la constancia en
//               el campo "archivo". Todo o nada.
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        id       path      string  true  "ID del trámite"
// @Param        archivo  formData  file    true  "constancia de inscripción"
// @Success      200  {object}  dto.TramiteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/tramites/{id}/inscripcion [post]
func (h *AdminTramiteHandler) RegistrarInscripcion(c *fiber.Ctx) error {
	var in dto.InscripcionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "formulario inválido"})
	}
	fh, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la constancia de inscripción es requerida"})
	}
	data, contentType, err := leerArchivo(fh)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	out, err := h.uc.RegistrarInscripcion(c.Context(), c.Params("id"), in, data, fh.Filename, contentType)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Eliminar godoc
// @Summary      Eliminar un trámite y todos sus datos
// @Description  Los trámites con denominación protegida no pueden eliminarse.
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "ID del trámite"
// @Success      200  {object}  dto.OkResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/tramites/{id} [delete]
func (h *AdminTramiteHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

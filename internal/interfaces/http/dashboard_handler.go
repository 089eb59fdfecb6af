package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gestorialegal/tramites-api/internal/application/usecase"
)

// DashboardHandler maneja el tablero del staff y los exports del listado.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Resumen godoc
// @Summary      Tablero del staff
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/admin/dashboard [get]
func (h *DashboardHandler) Resumen(c *fiber.Ctx) error {
	out, err := h.uc.Resumen(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar el listado de trámites a CSV
// @Tags         admin
// @Produce      text/csv
// @Param        estado        query  string  false  "estado general"
// @Param        validacion    query  string  false  "estado de validación"
// @Param        jurisdiccion  query  string  false  "CABA o BUENOS_AIRES"
// @Param        q             query  string  false  "texto en denominaciones o CUIT"
// @Router       /api/admin/tramites/export.csv [get]
func (h *DashboardHandler) ExportCSV(c *fiber.Ctx) error {
	data, err := h.uc.ExportCSV(c.Context(), filtroDesdeQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	nombre := "tramites_" + time.Now().Format("20060102") + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(data)
}

// ExportPDF godoc
// @Summary      Exportar el listado de trámites a PDF
// @Tags         admin
// @Produce      application/pdf
// @Param        estado        query  string  false  "estado general"
// @Param        validacion    query  string  false  "estado de validación"
// @Param        jurisdiccion  query  string  false  "CABA o BUENOS_AIRES"
// @Param        q             query  string  false  "texto en denominaciones o CUIT"
// @Router       /api/admin/tramites/export.pdf [get]
func (h *DashboardHandler) ExportPDF(c *fiber.Ctx) error {
	data, err := h.uc.ExportPDF(c.Context(), filtroDesdeQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	nombre := "tramites_" + time.Now().Format("20060102") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(data)
}

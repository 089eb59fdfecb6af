package http

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appConError(err error) *fiber.App {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	return app
}

func TestRespondError_EnProduccionOcultaElDetalle(t *testing.T) {
	anterior := exponerDetalleErrores
	t.Cleanup(func() { exponerDetalleErrores = anterior })
	exponerDetalleErrores = false

	app := appConError(errors.New("pq: duplicate key value violates unique constraint"))
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), "INTERNAL")
	assert.Contains(t, string(body), "error interno")
	assert.NotContains(t, string(body), "duplicate key", "el detalle interno nunca llega al cliente en producción")
}

func TestRespondError_FueraDeProduccionExponeElDetalle(t *testing.T) {
	anterior := exponerDetalleErrores
	t.Cleanup(func() { exponerDetalleErrores = anterior })
	exponerDetalleErrores = true

	app := appConError(errors.New("falla de diagnóstico"))
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "falla de diagnóstico")
}

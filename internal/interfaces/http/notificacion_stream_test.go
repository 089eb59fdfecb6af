package http

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorialegal/tramites-api/internal/application/usecase"
	"github.com/gestorialegal/tramites-api/internal/domain/entity"
)

// notifRepoStub repositorio mínimo para el stream; con fail=true toda lectura
// falla como si la base estuviera caída.
type notifRepoStub struct {
	fail   bool
	notifs []*entity.Notificacion
}

func (r *notifRepoStub) Create(context.Context, *entity.Notificacion) error { return nil }

func (r *notifRepoStub) ListByUser(_ context.Context, _ string, _ bool, _ int) ([]*entity.Notificacion, error) {
	if r.fail {
		return nil, errors.New("db no disponible")
	}
	return r.notifs, nil
}

func (r *notifRepoStub) CountNoLeidas(context.Context, string) (int, error) {
	if r.fail {
		return 0, errors.New("db no disponible")
	}
	return len(r.notifs), nil
}

func (r *notifRepoStub) MarcarLeida(context.Context, string, string) (int64, error) { return 0, nil }
func (r *notifRepoStub) MarcarTodasLeidas(context.Context, string) error            { return nil }
func (r *notifRepoStub) DeleteByTramite(context.Context, string) error              { return nil }

func TestEmitirSnapshot_LaFallaDeLecturaNoCortaElStream(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	uc := usecase.NewNotificacionUseCase(&notifRepoStub{fail: true})

	err := emitirSnapshot(w, uc, "u1")

	require.NoError(t, err, "una falla transitoria de lectura se saltea y se reintenta en el próximo tick")
	assert.Empty(t, buf.String(), "el tick fallido no escribe nada al cliente")
}

func TestEmitirSnapshot_EscribeElEventoConElConteo(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	uc := usecase.NewNotificacionUseCase(&notifRepoStub{notifs: []*entity.Notificacion{
		{ID: "n1", UserID: "u1", Titulo: "Etapa completada"},
	}})

	require.NoError(t, emitirSnapshot(w, uc, "u1"))

	salida := buf.String()
	assert.True(t, strings.HasPrefix(salida, "event: notificaciones\n"), salida)
	assert.Contains(t, salida, `"no_leidas":1`)
	assert.True(t, strings.HasSuffix(salida, "\n\n"), "el frame SSE termina con línea en blanco")
}

func TestEscribirEvento_FrameDeConexion(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	require.NoError(t, escribirEvento(w, "connected", []byte("{}")))

	assert.Equal(t, "event: connected\ndata: {}\n\n", buf.String())
}

// escritorRoto simula al cliente desconectado.
type escritorRoto struct{}

func (escritorRoto) Write([]byte) (int, error) { return 0, errors.New("cliente desconectado") }

func TestEscribirEvento_LaFallaDeEscrituraSiCortaElStream(t *testing.T) {
	w := bufio.NewWriter(escritorRoto{})

	err := escribirEvento(w, "notificaciones", []byte("{}"))

	assert.Error(t, err)
}

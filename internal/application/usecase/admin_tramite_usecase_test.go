package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorialegal/tramites-api/internal/application/dto"
	"github.com/gestorialegal/tramites-api/internal/domain"
	"github.com/gestorialegal/tramites-api/internal/domain/entity"
)

func nuevoAdminUC(s *memStore) (*AdminTramiteUseCase, *fakeStorage, *fakeEmail) {
	storage := &fakeStorage{}
	email := &fakeEmail{}
	uc := NewAdminTramiteUseCase(&memTxRunner{s}, &memTramiteRepo{s}, &memUserRepo{s}, storage, email)
	return uc, storage, email
}

func TestCambiarEstado_RegistraHistorialYNotifica(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	uc, _, email := nuevoAdminUC(s)

	err := uc.CambiarEstado(context.Background(), tr.ID, dto.CambioEstadoRequest{
		Estado: entity.EstadoEnProceso,
		Motivo: "arrancamos la gestión",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.EstadoEnProceso, s.tramites[tr.ID].EstadoGeneral)
	require.Len(t, s.historial, 1)
	assert.Equal(t, entity.EstadoIniciado, s.historial[0].EstadoAnterior)
	assert.Equal(t, entity.EstadoEnProceso, s.historial[0].EstadoNuevo)
	assert.Len(t, s.notifsDe(cliente.ID), 1, "el cliente debe recibir una notificación")
	assert.Len(t, email.enviados, 1, "el cliente debe recibir un email")
}

func TestCambiarEstado_MismoEstadoNoGeneraHistorial(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	uc, _, _ := nuevoAdminUC(s)

	err := uc.CambiarEstado(context.Background(), tr.ID, dto.CambioEstadoRequest{Estado: entity.EstadoIniciado})
	require.NoError(t, err)

	assert.Empty(t, s.historial, "sin transición no debe haber entrada de historial")
	assert.Empty(t, s.notifs, "sin transición no debe haber notificación")
}

func TestCambiarEstado_EstadoInvalido(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	uc, _, _ := nuevoAdminUC(s)

	err := uc.CambiarEstado(context.Background(), tr.ID, dto.CambioEstadoRequest{Estado: "ARCHIVADO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCambiarEtapa_MarcaFlagYNotifica(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	uc, _, email := nuevoAdminUC(s)

	out, err := uc.CambiarEtapa(context.Background(), tr.ID, dto.CambioEtapaRequest{
		Etapa: "nombre_reservado",
		Valor: true,
	})
	require.NoError(t, err)

	assert.True(t, s.tramites[tr.ID].NombreReservado)
	assert.True(t, out.Etapas["nombre_reservado"])
	assert.Len(t, s.notifsDe(cliente.ID), 1)
	assert.Len(t, email.enviados, 1)
}

func TestCambiarEtapa_DesmarcarNoAnuncia(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	tr.NombreReservado = true
	uc, _, email := nuevoAdminUC(s)

	_, err := uc.CambiarEtapa(context.Background(), tr.ID, dto.CambioEtapaRequest{
		Etapa: "nombre_reservado",
		Valor: false,
	})
	require.NoError(t, err)

	assert.False(t, s.tramites[tr.ID].NombreReservado)
	assert.Empty(t, s.notifs, "una corrección hacia atrás no genera notificación")
	assert.Empty(t, email.enviados)
}

func TestCambiarEtapa_ClaveDesconocida(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	uc, _, _ := nuevoAdminUC(s)

	_, err := uc.CambiarEtapa(context.Background(), tr.ID, dto.CambioEtapaRequest{Etapa: "etapa_inventada", Valor: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidar_ValidadoAvanzaAEnProceso(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	tr.EstadoGeneral = entity.EstadoEsperandoAprobacion
	uc, _, _ := nuevoAdminUC(s)

	err := uc.Validar(context.Background(), tr.ID, dto.ValidacionRequest{Resultado: entity.ValidacionValidado})
	require.NoError(t, err)

	assert.Equal(t, entity.ValidacionValidado, s.tramites[tr.ID].EstadoValidacion)
	assert.Equal(t, entity.EstadoEnProceso, s.tramites[tr.ID].EstadoGeneral)
	require.Len(t, s.historial, 1)
}

func TestValidar_CorreccionDevuelveAlCliente(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	uc, _, _ := nuevoAdminUC(s)

	err := uc.Validar(context.Background(), tr.ID, dto.ValidacionRequest{
		Resultado: entity.ValidacionRequiereCorreccion,
		Motivo:    "falta el domicilio legal",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ValidacionRequiereCorreccion, s.tramites[tr.ID].EstadoValidacion)
	assert.Equal(t, entity.EstadoEsperandoCliente, s.tramites[tr.ID].EstadoGeneral)
	notifs := s.notifsDe(cliente.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, entity.NotifAccionRequerida, notifs[0].Tipo)
}

func TestValidar_ResultadoInvalido(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	uc, _, _ := nuevoAdminUC(s)

	err := uc.Validar(context.Background(), tr.ID, dto.ValidacionRequest{Resultado: entity.ValidacionPendiente})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAprobarNombre_AlternativaPropuesta(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	tr.RazonSocial2 = "Amanecer Tech"
	uc, _, _ := nuevoAdminUC(s)

	// La comparación normaliza tildes y mayúsculas: "amanecer tech" matchea.
	_, err := uc.AprobarNombre(context.Background(), tr.ID, dto.AprobarNombreRequest{Nombre: "AMANECER TECH"})
	require.NoError(t, err)

	assert.Equal(t, "AMANECER TECH", s.tramites[tr.ID].RazonSocialAprobada)
	assert.Equal(t, "Aurora Digital", s.tramites[tr.ID].RazonSocial1,
		"una alternativa aprobada no pisa la denominación principal")
	assert.True(t, s.tramites[tr.ID].NombreReservado)
}

func TestAprobarNombre_ContrapropuestaPisaLaPrincipal(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	uc, _, _ := nuevoAdminUC(s)

	_, err := uc.AprobarNombre(context.Background(), tr.ID, dto.AprobarNombreRequest{Nombre: "Aurora Digital Group"})
	require.NoError(t, err)

	assert.Equal(t, "Aurora Digital Group", s.tramites[tr.ID].RazonSocialAprobada)
	assert.Equal(t, "Aurora Digital Group", s.tramites[tr.ID].RazonSocial1,
		"una contrapropuesta del registro pisa la denominación principal")
}

func TestRegistrarInscripcion_TodoJunto(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	tr.EstadoGeneral = entity.EstadoEnProceso
	uc, storage, email := nuevoAdminUC(s)

	out, err := uc.RegistrarInscripcion(context.Background(), tr.ID, dto.InscripcionRequest{
		CUIT:              "30-71234567-8",
		NumeroInscripcion: "IGJ-2026-001",
		NumeroResolucion:  "RES-4821",
		FechaInscripcion:  "2026-08-15",
	}, []byte("constancia"), "constancia.pdf", "application/pdf")
	require.NoError(t, err)

	got := s.tramites[tr.ID]
	assert.True(t, got.SociedadInscripta)
	assert.True(t, got.TieneDatosFinales())
	assert.Equal(t, entity.EstadoCompletado, got.EstadoGeneral)
	assert.Equal(t, entity.EstadoCompletado, out.EstadoGeneral)
	assert.Len(t, storage.subidas, 1)
	require.Len(t, s.docs, 1, "la constancia debe quedar como documento")
	for _, d := range s.docs {
		assert.Equal(t, entity.DocTipoConstanciaInscripcion, d.Tipo)
		assert.Equal(t, entity.DocAprobado, d.Estado)
	}
	require.Len(t, s.historial, 1)
	assert.Len(t, email.enviados, 1)
}

func TestRegistrarInscripcion_CampoFaltante(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	uc, _, _ := nuevoAdminUC(s)

	_, err := uc.RegistrarInscripcion(context.Background(), tr.ID, dto.InscripcionRequest{
		CUIT:             "30-71234567-8",
		FechaInscripcion: "2026-08-15",
	}, []byte("constancia"), "constancia.pdf", "application/pdf")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, s.tramites[tr.ID].SociedadInscripta)
}

func TestRegistrarInscripcion_FallaDeStorageNoTocaNada(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	uc, storage, _ := nuevoAdminUC(s)
	storage.fail = true

	_, err := uc.RegistrarInscripcion(context.Background(), tr.ID, dto.InscripcionRequest{
		CUIT:              "30-71234567-8",
		NumeroInscripcion: "IGJ-2026-001",
		NumeroResolucion:  "RES-4821",
		FechaInscripcion:  "2026-08-15",
	}, []byte("constancia"), "constancia.pdf", "application/pdf")
	require.Error(t, err)

	assert.False(t, s.tramites[tr.ID].SociedadInscripta)
	assert.Empty(t, s.docs)
	assert.Empty(t, s.historial)
}

func TestEliminar_BorraDependientesYElTramite(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	otro := s.addTramite(cliente.ID, "Otra Sociedad")
	s.historial = append(s.historial, &entity.EtapaHistorial{ID: "h1", TramiteID: tr.ID})
	s.notifs = append(s.notifs, &entity.Notificacion{ID: "n1", UserID: cliente.ID, TramiteID: tr.ID})
	s.mensajes = append(s.mensajes, &entity.Mensaje{ID: "m1", TramiteID: tr.ID})
	uc, _, _ := nuevoAdminUC(s)

	err := uc.Eliminar(context.Background(), tr.ID)
	require.NoError(t, err)

	assert.NotContains(t, s.tramites, tr.ID)
	assert.Contains(t, s.tramites, otro.ID, "los demás expedientes no se tocan")
	assert.Empty(t, s.historial)
	assert.Empty(t, s.notifs)
	assert.Empty(t, s.mensajes)
}

func TestEliminar_DenominacionProtegida(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Gestoría Legal SAS")
	uc, _, _ := nuevoAdminUC(s)

	err := uc.Eliminar(context.Background(), tr.ID)
	assert.ErrorIs(t, err, domain.ErrProtectedTramite)
	assert.Contains(t, s.tramites, tr.ID, "el expediente protegido debe seguir existiendo")
}

func TestEliminar_NoExiste(t *testing.T) {
	s := newMemStore()
	uc, _, _ := nuevoAdminUC(s)

	err := uc.Eliminar(context.Background(), "inexistente")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

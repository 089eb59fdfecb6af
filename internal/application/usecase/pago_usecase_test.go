package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorialegal/tramites-api/internal/application/dto"
	"github.com/gestorialegal/tramites-api/internal/domain"
	"github.com/gestorialegal/tramites-api/internal/domain/entity"
)

func nuevoPagoUC(s *memStore, provider *fakeProvider) (*PagoUseCase, *fakeStorage, *fakeEmail) {
	storage := &fakeStorage{}
	email := &fakeEmail{}
	if provider == nil {
		provider = &fakeProvider{pagos: map[string]*ProviderPayment{}}
	}
	uc := NewPagoUseCase(&memTxRunner{s}, &memTramiteRepo{s}, &memPagoRepo{s}, &memUserRepo{s}, storage, provider, email)
	return uc, storage, email
}

func TestCrearPago_TransferenciaQuedaPendiente(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	uc, storage, _ := nuevoPagoUC(s, nil)

	out, err := uc.Crear(context.Background(), cliente.ID, tr.ID, dto.CreatePagoRequest{
		Concepto: entity.ConceptoHonorarios,
		Monto:    decimal.NewFromInt(150000),
		Metodo:   entity.MetodoTransferencia,
	}, []byte("comprobante"), "comprobante.jpg", "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, entity.PagoPendiente, out.Estado)
	assert.Equal(t, "ARS", out.Moneda, "la moneda por defecto es ARS")
	assert.NotEmpty(t, out.ComprobanteURL)
	assert.Len(t, storage.subidas, 1)
}

func TestCrearPago_MercadoPagoArmaReferenciaExterna(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	uc, _, _ := nuevoPagoUC(s, nil)

	out, err := uc.Crear(context.Background(), cliente.ID, tr.ID, dto.CreatePagoRequest{
		Concepto: entity.ConceptoTasaRegistral,
		Monto:    decimal.NewFromInt(45000),
		Metodo:   entity.MetodoMercadoPago,
	}, nil, "", "")
	require.NoError(t, err)

	assert.Equal(t, entity.PagoProcesando, out.Estado)
	assert.Equal(t, entity.ReferenciaExternaDe(tr.ID, entity.ConceptoTasaRegistral), out.ReferenciaExterna)
}

func TestCrearPago_SoloElDueno(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	intruso := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	uc, _, _ := nuevoPagoUC(s, nil)

	_, err := uc.Crear(context.Background(), intruso.ID, tr.ID, dto.CreatePagoRequest{
		Concepto: entity.ConceptoHonorarios,
		Monto:    decimal.NewFromInt(1000),
		Metodo:   entity.MetodoTransferencia,
	}, nil, "", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCrearPago_MontoNoPositivo(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	uc, _, _ := nuevoPagoUC(s, nil)

	_, err := uc.Crear(context.Background(), cliente.ID, tr.ID, dto.CreatePagoRequest{
		Concepto: entity.ConceptoHonorarios,
		Monto:    decimal.Zero,
		Metodo:   entity.MetodoTransferencia,
	}, nil, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCrearManual_NaceAprobado(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	uc, _, _ := nuevoPagoUC(s, nil)

	out, err := uc.CrearManual(context.Background(), tr.ID, dto.CreatePagoManualRequest{
		Concepto: entity.ConceptoReservaNombre,
		Monto:    decimal.NewFromInt(12000),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PagoAprobado, out.Estado)
	assert.Equal(t, entity.MetodoManual, out.Metodo)
	assert.Equal(t, cliente.ID, out.UserID, "el pago queda a nombre del dueño del trámite")
}

func TestConfirmarTransferencia_ApruebaYNotifica(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	p := &entity.Pago{
		ID: "p1", TramiteID: tr.ID, UserID: cliente.ID,
		Concepto: entity.ConceptoHonorarios, Monto: decimal.NewFromInt(150000),
		Moneda: "ARS", Estado: entity.PagoPendiente, Metodo: entity.MetodoTransferencia,
	}
	s.pagos[p.ID] = p
	uc, _, email := nuevoPagoUC(s, nil)

	out, err := uc.ConfirmarTransferencia(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, entity.PagoAprobado, out.Estado)
	assert.Len(t, s.notifsDe(cliente.ID), 1)
	assert.Len(t, email.enviados, 1)
}

func TestConfirmarTransferencia_YaAprobado(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	s.pagos["p1"] = &entity.Pago{
		ID: "p1", TramiteID: tr.ID, UserID: cliente.ID,
		Monto: decimal.NewFromInt(1), Estado: entity.PagoAprobado,
	}
	uc, _, _ := nuevoPagoUC(s, nil)

	_, err := uc.ConfirmarTransferencia(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProcesarWebhook_ApruebaElPagoPendiente(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	ref := entity.ReferenciaExternaDe(tr.ID, entity.ConceptoTasaRegistral)
	s.pagos["p1"] = &entity.Pago{
		ID: "p1", TramiteID: tr.ID, UserID: cliente.ID,
		Concepto: entity.ConceptoTasaRegistral, Monto: decimal.NewFromInt(45000),
		Moneda: "ARS", Estado: entity.PagoProcesando, Metodo: entity.MetodoMercadoPago,
		ReferenciaExterna: ref,
	}
	provider := &fakeProvider{pagos: map[string]*ProviderPayment{
		"mp-777": {ID: "mp-777", Status: "approved", ExternalReference: ref, TransactionAmount: decimal.NewFromInt(45000)},
	}}
	uc, _, email := nuevoPagoUC(s, provider)

	err := uc.ProcesarWebhook(context.Background(), "mp-777")
	require.NoError(t, err)

	assert.Equal(t, entity.PagoAprobado, s.pagos["p1"].Estado)
	assert.Len(t, s.notifsDe(cliente.ID), 1)
	assert.Len(t, email.enviados, 1)
}

func TestProcesarWebhook_EstadoNoAprobadoSeIgnora(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	ref := entity.ReferenciaExternaDe(tr.ID, entity.ConceptoTasaRegistral)
	s.pagos["p1"] = &entity.Pago{
		ID: "p1", TramiteID: tr.ID, UserID: cliente.ID,
		Monto: decimal.NewFromInt(45000), Estado: entity.PagoProcesando,
		ReferenciaExterna: ref,
	}
	provider := &fakeProvider{pagos: map[string]*ProviderPayment{
		"mp-777": {ID: "mp-777", Status: "pending", ExternalReference: ref},
	}}
	uc, _, _ := nuevoPagoUC(s, provider)

	err := uc.ProcesarWebhook(context.Background(), "mp-777")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.PagoProcesando, s.pagos["p1"].Estado, "el pago local no debe cambiar")
}

func TestProcesarWebhook_DuplicadoNoApruebaDosVeces(t *testing.T) {
	s := newMemStore()
	cliente := s.addUser(entity.RoleCliente)
	tr := s.addTramite(cliente.ID, "Aurora Digital")
	ref := entity.ReferenciaExternaDe(tr.ID, entity.ConceptoTasaRegistral)
	s.pagos["p1"] = &entity.Pago{
		ID: "p1", TramiteID: tr.ID, UserID: cliente.ID,
		Concepto: entity.ConceptoTasaRegistral, Monto: decimal.NewFromInt(45000),
		Moneda: "ARS", Estado: entity.PagoProcesando, ReferenciaExterna: ref,
	}
	provider := &fakeProvider{pagos: map[string]*ProviderPayment{
		"mp-777": {ID: "mp-777", Status: "approved", ExternalReference: ref},
	}}
	uc, _, _ := nuevoPagoUC(s, provider)

	require.NoError(t, uc.ProcesarWebhook(context.Background(), "mp-777"))

	// Reentrega del gateway: el pago ya está APROBADO y no matchea como
	// pendiente, así que el segundo webhook se rechaza.
	err := uc.ProcesarWebhook(context.Background(), "mp-777")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, s.notifsDe(cliente.ID), 1, "no debe duplicarse la notificación")
}

func TestProcesarWebhook_ReferenciaDesconocida(t *testing.T) {
	s := newMemStore()
	provider := &fakeProvider{pagos: map[string]*ProviderPayment{
		"mp-999": {ID: "mp-999", Status: "approved", ExternalReference: "otro|CONCEPTO"},
	}}
	uc, _, _ := nuevoPagoUC(s, provider)

	err := uc.ProcesarWebhook(context.Background(), "mp-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProcesarWebhook_IDVacio(t *testing.T) {
	s := newMemStore()
	uc, _, _ := nuevoPagoUC(s, nil)

	err := uc.ProcesarWebhook(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

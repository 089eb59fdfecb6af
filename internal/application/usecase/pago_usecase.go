package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gestorialegal/tramites-api/internal/application/dto"
	"github.com/gestorialegal/tramites-api/internal/domain"
	"github.com/gestorialegal/tramites-api/internal/domain/entity"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

// PagoUseCase pagos del trámite: flujo iniciado por el cliente, alta manual
// del staff, confirmación de transferencias y procesamiento del webhook.
type PagoUseCase struct {
	txRunner    TxRunner
	tramiteRepo repository.TramiteRepository
	pagoRepo    repository.PagoRepository
	userRepo    repository.UserRepository
	storage     FileStorage
	provider    PaymentProvider
	email       EmailSender
}

// NewPagoUseCase construye el caso de uso.
func NewPagoUseCase(
	txRunner TxRunner,
	tramiteRepo repository.TramiteRepository,
	pagoRepo repository.PagoRepository,
	userRepo repository.UserRepository,
	storage FileStorage,
	provider PaymentProvider,
	email EmailSender,
) *PagoUseCase {
	return &PagoUseCase{
		txRunner:    txRunner,
		tramiteRepo: tramiteRepo,
		pagoRepo:    pagoRepo,
		userRepo:    userRepo,
		storage:     storage,
		provider:    provider,
		email:       email,
	}
}

// Crear inicia un pago del cliente. TRANSFERENCIA arranca PENDIENTE (queda a
// confirmación del staff, con comprobante opcional); MERCADOPAGO arranca
// PROCESANDO con la referencia externa "tramiteID|concepto" que luego matchea
// el webhook.
func (uc *PagoUseCase) Crear(
	ctx context.Context,
	callerID, tramiteID string,
	in dto.CreatePagoRequest,
	comprobante []byte,
	comprobanteNombre, comprobanteContentType string,
) (*dto.PagoResponse, error) {
	if in.Concepto == "" || !in.Monto.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.Metodo != entity.MetodoTransferencia && in.Metodo != entity.MetodoMercadoPago {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.tramiteRepo.GetByID(ctx, tramiteID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if t.UserID != callerID {
		return nil, domain.ErrForbidden
	}

	moneda := in.Moneda
	if moneda == "" {
		moneda = "ARS"
	}
	now := time.Now()
	p := &entity.Pago{
		ID:        uuid.New().String(),
		TramiteID: tramiteID,
		UserID:    callerID,
		Concepto:  in.Concepto,
		Monto:     in.Monto,
		Moneda:    moneda,
		Metodo:    in.Metodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	switch in.Metodo {
	case entity.MetodoTransferencia:
		p.Estado = entity.PagoPendiente
		if len(comprobante) > 0 {
			url, err := uc.storage.Upload(ctx, comprobante, "comprobantes/"+tramiteID, comprobanteNombre, comprobanteContentType)
			if err != nil {
				return nil, err
			}
			p.ComprobanteURL = url
		}
	case entity.MetodoMercadoPago:
		p.Estado = entity.PagoProcesando
		p.ReferenciaExterna = entity.ReferenciaExternaDe(tramiteID, in.Concepto)
	}

	if err := uc.pagoRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return ToPagoResponse(p), nil
}

// CrearManual registra un pago ya cobrado por el staff: nace APROBADO.
func (uc *PagoUseCase) CrearManual(ctx context.Context, tramiteID string, in dto.CreatePagoManualRequest) (*dto.PagoResponse, error) {
	if in.Concepto == "" || !in.Monto.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.tramiteRepo.GetByID(ctx, tramiteID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	moneda := in.Moneda
	if moneda == "" {
		moneda = "ARS"
	}
	now := time.Now()
	p := &entity.Pago{
		ID:        uuid.New().String(),
		TramiteID: tramiteID,
		UserID:    t.UserID,
		Concepto:  in.Concepto,
		Monto:     in.Monto,
		Moneda:    moneda,
		Estado:    entity.PagoAprobado,
		Metodo:    entity.MetodoManual,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.pagoRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return ToPagoResponse(p), nil
}

// ConfirmarTransferencia aprueba un pago por transferencia pendiente y
// notifica al cliente, en una sola transacción.
func (uc *PagoUseCase) ConfirmarTransferencia(ctx context.Context, pagoID string) (*dto.PagoResponse, error) {
	p, err := uc.pagoRepo.GetByID(ctx, pagoID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Estado == entity.PagoAprobado {
		return nil, domain.ErrConflict
	}
	p.Estado = entity.PagoAprobado
	p.UpdatedAt = time.Now()

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := r.Pagos.Update(ctx, p); err != nil {
			return err
		}
		return r.Notificaciones.Create(ctx, NuevaNotificacion(
			p.UserID, p.TramiteID, entity.NotifExito,
			"Pago confirmado",
			"Confirmamos tu pago de "+p.Concepto+" por "+p.Monto.StringFixed(2)+" "+p.Moneda+".",
			"/tramites/"+p.TramiteID+"/pagos"))
	})
	if err != nil {
		return nil, err
	}

	if cliente, err := uc.userRepo.GetByID(ctx, p.UserID); err == nil && cliente != nil {
		enviarEmail(uc.email, cliente.Email, "Pago confirmado",
			"Hola "+cliente.Name+": confirmamos tu pago de "+p.Concepto+" por "+p.Monto.StringFixed(2)+" "+p.Moneda+".")
	}
	return ToPagoResponse(p), nil
}

// ListByTramite lista los pagos del trámite (dueño o staff).
func (uc *PagoUseCase) ListByTramite(ctx context.Context, callerID string, esStaff bool, tramiteID string) ([]dto.PagoResponse, error) {
	t, err := uc.tramiteRepo.GetByID(ctx, tramiteID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if !esStaff && t.UserID != callerID {
		return nil, domain.ErrForbidden
	}
	list, err := uc.pagoRepo.ListByTramite(ctx, tramiteID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PagoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToPagoResponse(p))
	}
	return items, nil
}

// ProcesarWebhook resuelve una notificación del gateway. Nunca confía en el
// cuerpo del webhook: re-consulta el pago a la API del proveedor y recién ahí
// busca el pago local PENDIENTE/PROCESANDO por referencia externa. Un pago
// inexistente o ya aprobado se rechaza sin crear aprobaciones duplicadas.
func (uc *PagoUseCase) ProcesarWebhook(ctx context.Context, providerPaymentID string) error {
	if providerPaymentID == "" {
		return domain.ErrInvalidInput
	}
	pp, err := uc.provider.GetPayment(ctx, providerPaymentID)
	if err != nil {
		return err
	}
	if pp.Status != "approved" {
		log.Info().Str("provider_payment_id", providerPaymentID).Str("status", pp.Status).
			Msg("webhook ignorado: el proveedor no reporta el pago como aprobado")
		return domain.ErrConflict
	}

	p, err := uc.pagoRepo.GetPendienteByReferencia(ctx, pp.ExternalReference)
	if err != nil {
		return err
	}
	if p == nil {
		// Referencia desconocida o pago ya aprobado: no hay nada que aprobar.
		log.Warn().Str("external_reference", pp.ExternalReference).
			Msg("webhook rechazado: sin pago pendiente para la referencia")
		return domain.ErrNotFound
	}

	p.Estado = entity.PagoAprobado
	p.ReferenciaExterna = pp.ExternalReference
	p.UpdatedAt = time.Now()

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := r.Pagos.Update(ctx, p); err != nil {
			return err
		}
		return r.Notificaciones.Create(ctx, NuevaNotificacion(
			p.UserID, p.TramiteID, entity.NotifExito,
			"Pago acreditado",
			"Se acreditó tu pago de "+p.Concepto+" por "+p.Monto.StringFixed(2)+" "+p.Moneda+".",
			"/tramites/"+p.TramiteID+"/pagos"))
	})
	if err != nil {
		return err
	}

	if cliente, err := uc.userRepo.GetByID(ctx, p.UserID); err == nil && cliente != nil {
		enviarEmail(uc.email, cliente.Email, "Pago acreditado",
			"Hola "+cliente.Name+": se acreditó tu pago de "+p.Concepto+" por "+p.Monto.StringFixed(2)+" "+p.Moneda+".")
	}
	return nil
}

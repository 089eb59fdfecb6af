package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gestorialegal/tramites-api/internal/application/dto"
	"github.com/gestorialegal/tramites-api/internal/domain"
	"github.com/gestorialegal/tramites-api/internal/domain/entity"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

// TramiteUseCase operaciones del cliente sobre su propio expediente.
type TramiteUseCase struct {
	txRunner    TxRunner
	tramiteRepo repository.TramiteRepository
	histRepo    repository.EtapaHistorialRepository
	cuentaRepo  repository.CuentaBancariaRepository
	userRepo    repository.UserRepository
}

// NewTramiteUseCase construye el caso de uso.
func NewTramiteUseCase(
	txRunner TxRunner,
	tramiteRepo repository.TramiteRepository,
	histRepo repository.EtapaHistorialRepository,
	cuentaRepo repository.CuentaBancariaRepository,
	userRepo repository.UserRepository,
) *TramiteUseCase {
	return &TramiteUseCase{
		txRunner:    txRunner,
		tramiteRepo: tramiteRepo,
		histRepo:    histRepo,
		cuentaRepo:  cuentaRepo,
		userRepo:    userRepo,
	}
}

// Create da de alta un expediente: estado INICIADO, validación PENDIENTE,
// todas las etapas en false.
func (uc *TramiteUseCase) Create(ctx context.Context, userID string, in dto.CreateTramiteRequest) (*dto.TramiteResponse, error) {
	if in.RazonSocial1 == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Jurisdiccion != entity.JurisdiccionCABA && in.Jurisdiccion != entity.JurisdiccionBuenosAires {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	t := &entity.Tramite{
		ID:               uuid.New().String(),
		UserID:           userID,
		RazonSocial1:     in.RazonSocial1,
		RazonSocial2:     in.RazonSocial2,
		RazonSocial3:     in.RazonSocial3,
		ObjetoSocial:     in.ObjetoSocial,
		DomicilioLegal:   in.DomicilioLegal,
		CapitalSocial:    in.CapitalSocial,
		Jurisdiccion:     in.Jurisdiccion,
		EstadoGeneral:    entity.EstadoIniciado,
		EstadoValidacion: entity.ValidacionPendiente,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.tramiteRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return ToTramiteResponse(t), nil
}

// GetByID devuelve el expediente si el caller es el dueño o es staff.
func (uc *TramiteUseCase) GetByID(ctx context.Context, callerID string, esStaff bool, id string) (*dto.TramiteResponse, error) {
	t, err := uc.fetch(ctx, callerID, esStaff, id)
	if err != nil {
		return nil, err
	}
	return ToTramiteResponse(t), nil
}

// ListByUser lista los expedientes del cliente.
func (uc *TramiteUseCase) ListByUser(ctx context.Context, userID string, page dto.PageRequest) (*dto.TramiteListResponse, error) {
	page.DefaultPage()
	list, err := uc.tramiteRepo.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TramiteResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *ToTramiteResponse(t))
	}
	return &dto.TramiteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Historial lista las transiciones de estado del expediente.
func (uc *TramiteUseCase) Historial(ctx context.Context, callerID string, esStaff bool, id string) ([]dto.HistorialResponse, error) {
	if _, err := uc.fetch(ctx, callerID, esStaff, id); err != nil {
		return nil, err
	}
	list, err := uc.histRepo.ListByTramite(ctx, id)
	if err != nil {
		return nil, err
	}
	items := make([]dto.HistorialResponse, 0, len(list))
	for _, h := range list {
		items = append(items, *ToHistorialResponse(h))
	}
	return items, nil
}

// ActualizarFormulario aplica un paso del formulario de alta. Solo el dueño.
// Con Completo=true marca la etapa formulario_completo, pasa el estado a
// ESPERANDO_APROBACION (con historial) y notifica al staff, todo en una
// transacción.
func (uc *TramiteUseCase) ActualizarFormulario(ctx context.Context, callerID, id string, in dto.FormularioRequest) (*dto.TramiteResponse, error) {
	t, err := uc.fetch(ctx, callerID, false, id)
	if err != nil {
		return nil, err
	}
	if t.EstadoGeneral == entity.EstadoCompletado || t.EstadoGeneral == entity.EstadoCancelado {
		return nil, domain.ErrConflict
	}

	if in.RazonSocial1 != nil {
		t.RazonSocial1 = *in.RazonSocial1
	}
	if in.RazonSocial2 != nil {
		t.RazonSocial2 = *in.RazonSocial2
	}
	if in.RazonSocial3 != nil {
		t.RazonSocial3 = *in.RazonSocial3
	}
	if in.ObjetoSocial != nil {
		t.ObjetoSocial = *in.ObjetoSocial
	}
	if in.DomicilioLegal != nil {
		t.DomicilioLegal = *in.DomicilioLegal
	}
	if in.CapitalSocial != nil {
		t.CapitalSocial = *in.CapitalSocial
	}
	if in.Jurisdiccion != nil {
		if *in.Jurisdiccion != entity.JurisdiccionCABA && *in.Jurisdiccion != entity.JurisdiccionBuenosAires {
			return nil, domain.ErrInvalidInput
		}
		t.Jurisdiccion = *in.Jurisdiccion
	}

	estadoAnterior := t.EstadoGeneral
	completado := in.Completo && !t.FormularioCompleto
	if completado {
		t.FormularioCompleto = true
		t.EstadoGeneral = entity.EstadoEsperandoAprobacion
	}
	t.UpdatedAt = time.Now()

	gestores, err := uc.staffANotificar(ctx, completado)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := r.Tramites.Update(ctx, t); err != nil {
			return err
		}
		if !completado {
			return nil
		}
		if err := r.Historial.Create(ctx, &entity.EtapaHistorial{
			ID:             uuid.New().String(),
			TramiteID:      t.ID,
			EstadoAnterior: estadoAnterior,
			EstadoNuevo:    t.EstadoGeneral,
			Motivo:         "El cliente completó el formulario de alta",
			CreatedAt:      time.Now(),
		}); err != nil {
			return err
		}
		for _, g := range gestores {
			n := NuevaNotificacion(g.ID, t.ID, entity.NotifAccionRequerida,
				"Formulario listo para validar",
				"El trámite de "+t.NombreVigente()+" completó su formulario de alta.",
				"/admin/tramites/"+t.ID)
			if err := r.Notificaciones.Create(ctx, n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToTramiteResponse(t), nil
}

// CrearCuentaBancaria declara la cuenta del depósito de capital. Solo el dueño;
// una sola cuenta por trámite.
func (uc *TramiteUseCase) CrearCuentaBancaria(ctx context.Context, callerID, id string, in dto.CuentaBancariaRequest) error {
	if in.Banco == "" || in.CBU == "" || in.Titular == "" {
		return domain.ErrInvalidInput
	}
	if _, err := uc.fetch(ctx, callerID, false, id); err != nil {
		return err
	}
	existente, err := uc.cuentaRepo.GetByTramite(ctx, id)
	if err != nil {
		return err
	}
	if existente != nil {
		return domain.ErrDuplicate
	}
	return uc.cuentaRepo.Create(ctx, &entity.CuentaBancaria{
		ID:        uuid.New().String(),
		TramiteID: id,
		Banco:     in.Banco,
		CBU:       in.CBU,
		Alias:     in.Alias,
		Titular:   in.Titular,
		CreatedAt: time.Now(),
	})
}

// fetch trae el expediente y aplica el control de pertenencia.
func (uc *TramiteUseCase) fetch(ctx context.Context, callerID string, esStaff bool, id string) (*entity.Tramite, error) {
	t, err := uc.tramiteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if !esStaff && t.UserID != callerID {
		return nil, domain.ErrForbidden
	}
	return t, nil
}

// staffANotificar trae a los gestores activos cuando hace falta avisarles.
func (uc *TramiteUseCase) staffANotificar(ctx context.Context, necesario bool) ([]*entity.User, error) {
	if !necesario {
		return nil, nil
	}
	gestores, err := uc.userRepo.ListByRole(ctx, entity.RoleGestor, 50, 0)
	if err != nil {
		return nil, err
	}
	return gestores, nil
}

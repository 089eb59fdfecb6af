package usecase

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/gestorialegal/tramites-api/internal/application/dto"
	"github.com/gestorialegal/tramites-api/internal/domain"
	"github.com/gestorialegal/tramites-api/internal/domain/entity"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

// MensajeUseCase chat del trámite entre el cliente y el estudio.
type MensajeUseCase struct {
	txRunner    TxRunner
	tramiteRepo repository.TramiteRepository
	mensajeRepo repository.MensajeRepository
	userRepo    repository.UserRepository
}

// NewMensajeUseCase construye el caso de uso.
func NewMensajeUseCase(
	txRunner TxRunner,
	tramiteRepo repository.TramiteRepository,
	mensajeRepo repository.MensajeRepository,
	userRepo repository.UserRepository,
) *MensajeUseCase {
	return &MensajeUseCase{
		txRunner:    txRunner,
		tramiteRepo: tramiteRepo,
		mensajeRepo: mensajeRepo,
		userRepo:    userRepo,
	}
}

// Enviar publica un mensaje y notifica a la otra parte: si escribe el staff
// se avisa al cliente; si escribe el cliente, a los gestores.
func (uc *MensajeUseCase) Enviar(ctx context.Context, callerID string, esStaff bool, tramiteID string, in dto.CreateMensajeRequest) (*dto.MensajeResponse, error) {
	if in.Contenido == "" {
		return nil, domain.ErrInvalidInput
	}
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

	var destinatarios []string
	if esStaff {
		destinatarios = []string{t.UserID}
	} else {
		gestores, err := uc.userRepo.ListByRole(ctx, entity.RoleGestor, 50, 0)
		if err != nil {
			return nil, err
		}
		for _, g := range gestores {
			destinatarios = append(destinatarios, g.ID)
		}
	}

	m := &entity.Mensaje{
		ID:        uuid.New().String(),
		TramiteID: tramiteID,
		UserID:    callerID,
		Contenido: in.Contenido,
		EsStaff:   esStaff,
		CreatedAt: time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := r.Mensajes.Create(ctx, m); err != nil {
			return err
		}
		for _, dst := range destinatarios {
			n := NuevaNotificacion(dst, tramiteID, entity.NotifMensaje,
				"Nuevo mensaje en tu trámite",
				recortar(in.Contenido, 120),
				"/tramites/"+tramiteID+"/mensajes")
			if err := r.Notificaciones.Create(ctx, n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToMensajeResponse(m), nil
}

// ListByTramite lista el hilo del trámite (dueño o staff).
func (uc *MensajeUseCase) ListByTramite(ctx context.Context, callerID string, esStaff bool, tramiteID string, page dto.PageRequest) ([]dto.MensajeResponse, error) {
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
	page.DefaultPage()
	list, err := uc.mensajeRepo.ListByTramite(ctx, tramiteID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MensajeResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMensajeResponse(m))
	}
	return items, nil
}

// MarcarLeidos marca como leídos los mensajes del otro lado: el staff marca
// los del cliente y el cliente los del staff.
func (uc *MensajeUseCase) MarcarLeidos(ctx context.Context, callerID string, esStaff bool, tramiteID string) error {
	t, err := uc.tramiteRepo.GetByID(ctx, tramiteID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	if !esStaff && t.UserID != callerID {
		return domain.ErrForbidden
	}
	// El lector marca los mensajes escritos por la otra parte.
	return uc.mensajeRepo.MarcarLeidos(ctx, tramiteID, !esStaff)
}

// recortar corta el extracto en un límite de bytes retrocediendo hasta el
// inicio de runa más cercano, para no partir un carácter multibyte.
func recortar(s string, max int) string {
	if len(s) <= max {
		return s
	}
	corte := max
	for corte > 0 && !utf8.RuneStart(s[corte]) {
		corte--
	}
	return s[:corte] + "…"
}

package usecase

import (
	"context"

	"github.com/gestorialegal/tramites-api/internal/application/dto"
	"github.com/gestorialegal/tramites-api/internal/domain"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
)

// maxRecientes tope de notificaciones por snapshot del stream y por listado.
const maxRecientes = 20

// NotificacionUseCase lectura y marcado de notificaciones del caller.
type NotificacionUseCase struct {
	notifRepo repository.NotificacionRepository
}

// NewNotificacionUseCase construye el caso de uso.
func NewNotificacionUseCase(notifRepo repository.NotificacionRepository) *NotificacionUseCase {
	return &NotificacionUseCase{notifRepo: notifRepo}
}

// Listar devuelve las notificaciones más recientes del caller.
func (uc *NotificacionUseCase) Listar(ctx context.Context, callerID string, soloNoLeidas bool) ([]dto.NotificacionResponse, error) {
	list, err := uc.notifRepo.ListByUser(ctx, callerID, soloNoLeidas, maxRecientes)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificacionResponse, 0, len(list))
	for _, n := range list {
		items = append(items, *ToNotificacionResponse(n))
	}
	return items, nil
}

// Snapshot arma el evento periódico del stream: últimas no leídas + conteo.
func (uc *NotificacionUseCase) Snapshot(ctx context.Context, callerID string) (*dto.NotificacionSnapshot, error) {
	list, err := uc.notifRepo.ListByUser(ctx, callerID, true, maxRecientes)
	if err != nil {
		return nil, err
	}
	count, err := uc.notifRepo.CountNoLeidas(ctx, callerID)
	if err != nil {
		return nil, err
	}
	recientes := make([]dto.NotificacionResponse, 0, len(list))
	for _, n := range list {
		recientes = append(recientes, *ToNotificacionResponse(n))
	}
	return &dto.NotificacionSnapshot{NoLeidas: count, Recientes: recientes}, nil
}

// MarcarLeida marca una notificación propia como leída. Idempotente: volver a
// marcar una ya leída sigue afectando su fila y responde éxito. Si no existe o
// es de otro usuario responde no encontrado: el chequeo de pertenencia hace de
// chequeo de existencia y no filtra notificaciones ajenas.
func (uc *NotificacionUseCase) MarcarLeida(ctx context.Context, id, callerID string) error {
	n, err := uc.notifRepo.MarcarLeida(ctx, id, callerID)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarcarTodasLeidas marca todas las notificaciones no leídas del caller.
func (uc *NotificacionUseCase) MarcarTodasLeidas(ctx context.Context, callerID string) error {
	return uc.notifRepo.MarcarTodasLeidas(ctx, callerID)
}

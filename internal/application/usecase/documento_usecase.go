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

// DocumentoUseCase subida y revisión de documentos del trámite.
type DocumentoUseCase struct {
	txRunner    TxRunner
	tramiteRepo repository.TramiteRepository
	docRepo     repository.DocumentoRepository
	userRepo    repository.UserRepository
	storage     FileStorage
	email       EmailSender
}

// NewDocumentoUseCase construye el caso de uso.
func NewDocumentoUseCase(
	txRunner TxRunner,
	tramiteRepo repository.TramiteRepository,
	docRepo repository.DocumentoRepository,
	userRepo repository.UserRepository,
	storage FileStorage,
	email EmailSender,
) *DocumentoUseCase {
	return &DocumentoUseCase{
		txRunner:    txRunner,
		tramiteRepo: tramiteRepo,
		docRepo:     docRepo,
		userRepo:    userRepo,
		storage:     storage,
		email:       email,
	}
}

// Subir guarda el archivo en el storage y crea el documento PENDIENTE.
// Solo el dueño del trámite (o el staff) puede subir.
func (uc *DocumentoUseCase) Subir(
	ctx context.Context,
	callerID string,
	esStaff bool,
	tramiteID, tipo string,
	archivo []byte,
	nombre, contentType string,
) (*dto.DocumentoResponse, error) {
	if len(archivo) == 0 || nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	if tipo == "" {
		tipo = entity.DocTipoOtro
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

	url, err := uc.storage.Upload(ctx, archivo, "documentos/"+tramiteID, nombre, contentType)
	if err != nil {
		return nil, err
	}

	doc := &entity.Documento{
		ID:        uuid.New().String(),
		TramiteID: tramiteID,
		UserID:    callerID,
		Tipo:      tipo,
		Nombre:    nombre,
		URL:       url,
		Estado:    entity.DocPendiente,
		CreatedAt: time.Now(),
	}
	if err := uc.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return ToDocumentoResponse(doc), nil
}

// ListByTramite lista los documentos del trámite (dueño o staff).
func (uc *DocumentoUseCase) ListByTramite(ctx context.Context, callerID string, esStaff bool, tramiteID string) ([]dto.DocumentoResponse, error) {
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
	list, err := uc.docRepo.ListByTramite(ctx, tramiteID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentoResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *ToDocumentoResponse(d))
	}
	return items, nil
}

// Revisar registra el veredicto del staff sobre un documento pendiente.
// La aprobación estampa la fecha; el rechazo exige motivo no vacío y, además
// de notificar, envía el motivo por email. Cada documento se resuelve una vez.
func (uc *DocumentoUseCase) Revisar(ctx context.Context, docID string, in dto.RevisionDocumentoRequest) (*dto.DocumentoResponse, error) {
	if in.Estado != entity.DocAprobado && in.Estado != entity.DocRechazado {
		return nil, domain.ErrInvalidInput
	}
	if in.Estado == entity.DocRechazado && in.Motivo == "" {
		return nil, domain.ErrInvalidInput
	}

	doc, err := uc.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.Estado != entity.DocPendiente {
		return nil, domain.ErrConflict // ya resuelto
	}
	dueno, err := uc.userRepo.GetByID(ctx, doc.UserID)
	if err != nil {
		return nil, err
	}
	if dueno == nil {
		return nil, domain.ErrUserNotFound
	}

	ahora := time.Now()
	doc.Estado = in.Estado
	if in.Estado == entity.DocAprobado {
		doc.FechaAprobacion = &ahora
	} else {
		doc.MotivoRechazo = in.Motivo
	}

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := r.Documentos.Update(ctx, doc); err != nil {
			return err
		}
		if in.Estado == entity.DocAprobado {
			return r.Notificaciones.Create(ctx, NuevaNotificacion(
				doc.UserID, doc.TramiteID, entity.NotifExito,
				"Documento aprobado",
				"Tu documento \""+doc.Nombre+"\" fue aprobado.",
				"/tramites/"+doc.TramiteID+"/documentos"))
		}
		return r.Notificaciones.Create(ctx, NuevaNotificacion(
			doc.UserID, doc.TramiteID, entity.NotifAccionRequerida,
			"Documento rechazado",
			"Tu documento \""+doc.Nombre+"\" fue rechazado: "+in.Motivo,
			"/tramites/"+doc.TramiteID+"/documentos"))
	})
	if err != nil {
		return nil, err
	}

	if in.Estado == entity.DocRechazado {
		enviarEmail(uc.email, dueno.Email, "Documento rechazado",
			"Hola "+dueno.Name+": tu documento \""+doc.Nombre+"\" fue rechazado. Motivo: "+in.Motivo+". Volvé a subirlo corregido desde tu panel.")
	}
	return ToDocumentoResponse(doc), nil
}

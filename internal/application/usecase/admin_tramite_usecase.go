package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gestorialegal/tramites-api/internal/application/dto"
	"github.com/gestorialegal/tramites-api/internal/domain"
	"github.com/gestorialegal/tramites-api/internal/domain/entity"
	"github.com/gestorialegal/tramites-api/internal/domain/repository"
	domtramite "github.com/gestorialegal/tramites-api/internal/domain/tramite"
)

// estadosValidos valores aceptados para el estado general.
var estadosValidos = map[string]bool{
	entity.EstadoIniciado:            true,
	entity.EstadoEnProceso:           true,
	entity.EstadoEsperandoCliente:    true,
	entity.EstadoEsperandoAprobacion: true,
	entity.EstadoCompletado:          true,
	entity.EstadoCancelado:           true,
}

// AdminTramiteUseCase mutadores del expediente reservados al staff. Cada
// operación lógica corre en una sola transacción (expediente + historial +
// notificación); el email sale después del commit y es de mejor esfuerzo.
type AdminTramiteUseCase struct {
	txRunner    TxRunner
	tramiteRepo repository.TramiteRepository
	userRepo    repository.UserRepository
	storage     FileStorage
	email       EmailSender
}

// NewAdminTramiteUseCase construye el caso de uso.
func NewAdminTramiteUseCase(
	txRunner TxRunner,
	tramiteRepo repository.TramiteRepository,
	userRepo repository.UserRepository,
	storage FileStorage,
	email EmailSender,
) *AdminTramiteUseCase {
	return &AdminTramiteUseCase{
		txRunner:    txRunner,
		tramiteRepo: tramiteRepo,
		userRepo:    userRepo,
		storage:     storage,
		email:       email,
	}
}

// Buscar lista expedientes con filtros y paginación.
func (uc *AdminTramiteUseCase) Buscar(ctx context.Context, f repository.TramiteFilter) (*dto.TramiteListResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	list, total, err := uc.tramiteRepo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TramiteResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *ToTramiteResponse(t))
	}
	return &dto.TramiteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// CambiarEstado escribe el nuevo estado general, agrega la entrada de
// historial con el estado previo y notifica al cliente.
func (uc *AdminTramiteUseCase) CambiarEstado(ctx context.Context, id string, in dto.CambioEstadoRequest) error {
	if !estadosValidos[in.Estado] {
		return domain.ErrInvalidInput
	}
	t, cliente, err := uc.fetchConCliente(ctx, id)
	if err != nil {
		return err
	}
	estadoAnterior := t.EstadoGeneral
	if estadoAnterior == in.Estado {
		return nil // sin transición, sin historial
	}
	t.EstadoGeneral = in.Estado
	t.UpdatedAt = time.Now()

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := r.Tramites.Update(ctx, t); err != nil {
			return err
		}
		if err := r.Historial.Create(ctx, nuevaTransicion(t.ID, estadoAnterior, in.Estado, in.Motivo)); err != nil {
			return err
		}
		return r.Notificaciones.Create(ctx, NuevaNotificacion(
			t.UserID, t.ID, entity.NotifInfo,
			"Tu trámite cambió de estado",
			"El estado de "+t.NombreVigente()+" pasó a "+domtramite.DisplayStatus(t)+".",
			"/tramites/"+t.ID))
	})
	if err != nil {
		return err
	}

	enviarEmail(uc.email, cliente.Email, "Actualización de tu trámite",
		"Hola "+cliente.Name+": el estado de tu trámite "+t.NombreVigente()+" cambió a "+domtramite.DisplayStatus(t)+".")
	return nil
}

// CambiarEtapa marca o desmarca una etapa puntual. No valida orden entre
// etapas: cada hito se gestiona de forma independiente.
func (uc *AdminTramiteUseCase) CambiarEtapa(ctx context.Context, id string, in dto.CambioEtapaRequest) (*dto.TramiteResponse, error) {
	t, cliente, err := uc.fetchConCliente(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domtramite.SetFlag(t, in.Etapa, in.Valor) {
		return nil, domain.ErrInvalidInput
	}
	t.UpdatedAt = time.Now()

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := r.Tramites.Update(ctx, t); err != nil {
			return err
		}
		if !in.Valor {
			return nil // una corrección hacia atrás no se anuncia
		}
		return r.Notificaciones.Create(ctx, NuevaNotificacion(
			t.UserID, t.ID, entity.NotifExito,
			"Avance en tu trámite",
			"Se completó la etapa: "+etiquetaEtapa(in.Etapa)+".",
			"/tramites/"+t.ID))
	})
	if err != nil {
		return nil, err
	}

	if in.Valor {
		enviarEmail(uc.email, cliente.Email, "Avance en tu trámite",
			"Hola "+cliente.Name+": tu trámite "+t.NombreVigente()+" completó la etapa \""+etiquetaEtapa(in.Etapa)+"\".")
	}
	return ToTramiteResponse(t), nil
}

// Validar registra el veredicto del staff sobre el formulario. Solo admite
// VALIDADO o REQUIERE_CORRECCION. VALIDADO además avanza el estado general a
// EN_PROCESO salvo que el expediente ya esté COMPLETADO.
func (uc *AdminTramiteUseCase) Validar(ctx context.Context, id string, in dto.ValidacionRequest) error {
	if in.Resultado != entity.ValidacionValidado && in.Resultado != entity.ValidacionRequiereCorreccion {
		return domain.ErrInvalidInput
	}
	t, cliente, err := uc.fetchConCliente(ctx, id)
	if err != nil {
		return err
	}

	estadoAnterior := t.EstadoGeneral
	t.EstadoValidacion = in.Resultado
	if in.Resultado == entity.ValidacionValidado && t.EstadoGeneral != entity.EstadoCompletado {
		t.EstadoGeneral = entity.EstadoEnProceso
	}
	if in.Resultado == entity.ValidacionRequiereCorreccion && t.EstadoGeneral != entity.EstadoCompletado {
		t.EstadoGeneral = entity.EstadoEsperandoCliente
	}
	t.UpdatedAt = time.Now()

	var titulo, mensaje, cuerpoEmail string
	if in.Resultado == entity.ValidacionValidado {
		titulo = "Formulario validado"
		mensaje = "Validamos los datos de " + t.NombreVigente() + ". Seguimos con la reserva de nombre."
		cuerpoEmail = "Hola " + cliente.Name + ": validamos el formulario de tu trámite " + t.NombreVigente() + " y ya estamos trabajando en los próximos pasos."
	} else {
		titulo = "Tu formulario necesita correcciones"
		mensaje = "Revisá las observaciones sobre " + t.NombreVigente() + ": " + in.Motivo
		cuerpoEmail = "Hola " + cliente.Name + ": encontramos observaciones en el formulario de " + t.NombreVigente() + ". Detalle: " + in.Motivo
	}

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := r.Tramites.Update(ctx, t); err != nil {
			return err
		}
		if err := r.Historial.Create(ctx, nuevaTransicion(t.ID, estadoAnterior, t.EstadoGeneral, "Validación: "+in.Resultado)); err != nil {
			return err
		}
		tipo := entity.NotifExito
		if in.Resultado == entity.ValidacionRequiereCorreccion {
			tipo = entity.NotifAccionRequerida
		}
		return r.Notificaciones.Create(ctx, NuevaNotificacion(t.UserID, t.ID, tipo, titulo, mensaje, "/tramites/"+t.ID))
	})
	if err != nil {
		return err
	}

	enviarEmail(uc.email, cliente.Email, titulo, cuerpoEmail)
	return nil
}

// AprobarNombre registra la denominación aprobada por el registro. Si no
// coincide con ninguna de las tres alternativas propuestas se trata como
// contrapropuesta y además pisa la denominación principal, para que el
// frontend muestre el nombre definitivo.
func (uc *AdminTramiteUseCase) AprobarNombre(ctx context.Context, id string, in dto.AprobarNombreRequest) (*dto.TramiteResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	t, cliente, err := uc.fetchConCliente(ctx, id)
	if err != nil {
		return nil, err
	}

	aprobado := domtramite.Normalizar(in.Nombre)
	esAlternativa := aprobado == domtramite.Normalizar(t.RazonSocial1) ||
		aprobado == domtramite.Normalizar(t.RazonSocial2) ||
		aprobado == domtramite.Normalizar(t.RazonSocial3)

	t.RazonSocialAprobada = in.Nombre
	if !esAlternativa {
		t.RazonSocial1 = in.Nombre
	}
	t.NombreReservado = true
	t.UpdatedAt = time.Now()

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := r.Tramites.Update(ctx, t); err != nil {
			return err
		}
		return r.Notificaciones.Create(ctx, NuevaNotificacion(
			t.UserID, t.ID, entity.NotifExito,
			"Denominación aprobada",
			"El registro aprobó la denominación "+in.Nombre+".",
			"/tramites/"+t.ID))
	})
	if err != nil {
		return nil, err
	}

	enviarEmail(uc.email, cliente.Email, "Denominación aprobada",
		"Hola "+cliente.Name+": el registro aprobó la denominación \""+in.Nombre+"\" para tu sociedad.")
	return ToTramiteResponse(t), nil
}

// RegistrarInscripcion carga los datos registrales finales. Exige los cuatro
// campos y la constancia juntos; sube el archivo, crea el documento ya
// aprobado, marca la etapa terminal y completa el expediente, todo o nada.
// Es el único mutador que combina subida de archivo con transición de estado.
func (uc *AdminTramiteUseCase) RegistrarInscripcion(
	ctx context.Context,
	id string,
	in dto.InscripcionRequest,
	archivo []byte,
	archivoNombre, archivoContentType string,
) (*dto.TramiteResponse, error) {
	if in.CUIT == "" || in.NumeroInscripcion == "" || in.NumeroResolucion == "" || in.FechaInscripcion == "" || len(archivo) == 0 {
		return nil, domain.ErrInvalidInput
	}
	fecha, err := time.Parse("2006-01-02", in.FechaInscripcion)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	t, cliente, err := uc.fetchConCliente(ctx, id)
	if err != nil {
		return nil, err
	}

	// La subida va antes de la transacción: si falla, no se tocó nada.
	url, err := uc.storage.Upload(ctx, archivo, "constancias/"+t.ID, archivoNombre, archivoContentType)
	if err != nil {
		return nil, err
	}

	estadoAnterior := t.EstadoGeneral
	ahora := time.Now()
	t.CUIT = in.CUIT
	t.NumeroInscripcion = in.NumeroInscripcion
	t.NumeroResolucion = in.NumeroResolucion
	t.FechaInscripcion = &fecha
	t.SociedadInscripta = true
	t.EstadoGeneral = entity.EstadoCompletado
	t.UpdatedAt = ahora

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := r.Documentos.Create(ctx, &entity.Documento{
			ID:              uuid.New().String(),
			TramiteID:       t.ID,
			UserID:          t.UserID,
			Tipo:            entity.DocTipoConstanciaInscripcion,
			Nombre:          archivoNombre,
			URL:             url,
			Estado:          entity.DocAprobado,
			FechaAprobacion: &ahora,
			CreatedAt:       ahora,
		}); err != nil {
			return err
		}
		if err := r.Tramites.Update(ctx, t); err != nil {
			return err
		}
		if err := r.Historial.Create(ctx, nuevaTransicion(t.ID, estadoAnterior, entity.EstadoCompletado, "Sociedad inscripta en el registro")); err != nil {
			return err
		}
		return r.Notificaciones.Create(ctx, NuevaNotificacion(
			t.UserID, t.ID, entity.NotifExito,
			"¡Tu sociedad ya está inscripta!",
			t.NombreVigente()+" quedó inscripta con CUIT "+t.CUIT+". Felicitaciones.",
			"/tramites/"+t.ID))
	})
	if err != nil {
		return nil, err
	}

	enviarEmail(uc.email, cliente.Email, "¡Tu sociedad ya está inscripta!",
		"Hola "+cliente.Name+": "+t.NombreVigente()+" quedó inscripta en el registro con CUIT "+t.CUIT+". La constancia ya está disponible en tu panel. ¡Felicitaciones!")
	return ToTramiteResponse(t), nil
}

// Eliminar borra el expediente y todas sus filas dependientes en una sola
// transacción: historial, cuenta bancaria, pagos, documentos, notificaciones
// y mensajes, y al final el trámite. Las denominaciones protegidas nunca se
// eliminan.
func (uc *AdminTramiteUseCase) Eliminar(ctx context.Context, id string) error {
	t, err := uc.tramiteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	if domtramite.IsProtectedName(t.NombreVigente()) {
		return domain.ErrProtectedTramite
	}

	return uc.txRunner.Run(ctx, func(r Repos) error {
		// Dependientes primero: las FK no tienen cascada.
		if err := r.Historial.DeleteByTramite(ctx, id); err != nil {
			return err
		}
		if err := r.Cuentas.DeleteByTramite(ctx, id); err != nil {
			return err
		}
		if err := r.Pagos.DeleteByTramite(ctx, id); err != nil {
			return err
		}
		if err := r.Documentos.DeleteByTramite(ctx, id); err != nil {
			return err
		}
		if err := r.Notificaciones.DeleteByTramite(ctx, id); err != nil {
			return err
		}
		if err := r.Mensajes.DeleteByTramite(ctx, id); err != nil {
			return err
		}
		return r.Tramites.Delete(ctx, id)
	})
}

// fetchConCliente trae el expediente y su cliente dueño.
func (uc *AdminTramiteUseCase) fetchConCliente(ctx context.Context, id string) (*entity.Tramite, *entity.User, error) {
	t, err := uc.tramiteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if t == nil {
		return nil, nil, domain.ErrNotFound
	}
	cliente, err := uc.userRepo.GetByID(ctx, t.UserID)
	if err != nil {
		return nil, nil, err
	}
	if cliente == nil {
		return nil, nil, domain.ErrUserNotFound
	}
	return t, cliente, nil
}

func nuevaTransicion(tramiteID, anterior, nuevo, motivo string) *entity.EtapaHistorial {
	return &entity.EtapaHistorial{
		ID:             uuid.New().String(),
		TramiteID:      tramiteID,
		EstadoAnterior: anterior,
		EstadoNuevo:    nuevo,
		Motivo:         motivo,
		CreatedAt:      time.Now(),
	}
}

func etiquetaEtapa(clave string) string {
	for _, e := range domtramite.Etapas {
		if e.Clave == clave {
			return e.Etiqueta
		}
	}
	return clave
}

package usecase

import (
	"github.com/gestorialegal/tramites-api/internal/application/dto"
	"github.com/gestorialegal/tramites-api/internal/domain/entity"
	domtramite "github.com/gestorialegal/tramites-api/internal/domain/tramite"
)

// ToTramiteResponse proyecta el expediente con sus derivados (avance, estado
// visible, etapa actual) calculados al momento de responder.
func ToTramiteResponse(t *entity.Tramite) *dto.TramiteResponse {
	if t == nil {
		return nil
	}
	etapas := make(map[string]bool, len(domtramite.Etapas))
	flags := domtramite.Flags(t)
	for i, e := range domtramite.Etapas {
		etapas[e.Clave] = flags[i]
	}
	return &dto.TramiteResponse{
		ID:                  t.ID,
		UserID:              t.UserID,
		RazonSocial1:        t.RazonSocial1,
		RazonSocial2:        t.RazonSocial2,
		RazonSocial3:        t.RazonSocial3,
		RazonSocialAprobada: t.RazonSocialAprobada,
		ObjetoSocial:        t.ObjetoSocial,
		DomicilioLegal:      t.DomicilioLegal,
		CapitalSocial:       t.CapitalSocial,
		Jurisdiccion:        t.Jurisdiccion,
		Etapas:              etapas,
		EstadoGeneral:       t.EstadoGeneral,
		EstadoValidacion:    t.EstadoValidacion,
		Progreso:            domtramite.Progress(t),
		EstadoVisible:       domtramite.DisplayStatus(t),
		EtapaActual:         domtramite.CurrentStageLabel(t),
		CUIT:                t.CUIT,
		NumeroInscripcion:   t.NumeroInscripcion,
		NumeroResolucion:    t.NumeroResolucion,
		FechaInscripcion:    t.FechaInscripcion,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

// ToDocumentoResponse proyecta un documento.
func ToDocumentoResponse(d *entity.Documento) *dto.DocumentoResponse {
	if d == nil {
		return nil
	}
	return &dto.DocumentoResponse{
		ID:              d.ID,
		TramiteID:       d.TramiteID,
		UserID:          d.UserID,
		Tipo:            d.Tipo,
		Nombre:          d.Nombre,
		URL:             d.URL,
		Estado:          d.Estado,
		MotivoRechazo:   d.MotivoRechazo,
		FechaAprobacion: d.FechaAprobacion,
		CreatedAt:       d.CreatedAt,
	}
}

// ToPagoResponse proyecta un pago.
func ToPagoResponse(p *entity.Pago) *dto.PagoResponse {
	if p == nil {
		return nil
	}
	return &dto.PagoResponse{
		ID:                p.ID,
		TramiteID:         p.TramiteID,
		UserID:            p.UserID,
		Concepto:          p.Concepto,
		Monto:             p.Monto,
		Moneda:            p.Moneda,
		Estado:            p.Estado,
		Metodo:            p.Metodo,
		ReferenciaExterna: p.ReferenciaExterna,
		ComprobanteURL:    p.ComprobanteURL,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// ToMensajeResponse proyecta un mensaje del chat.
func ToMensajeResponse(m *entity.Mensaje) *dto.MensajeResponse {
	if m == nil {
		return nil
	}
	return &dto.MensajeResponse{
		ID:        m.ID,
		TramiteID: m.TramiteID,
		UserID:    m.UserID,
		Contenido: m.Contenido,
		EsStaff:   m.EsStaff,
		Leido:     m.Leido,
		CreatedAt: m.CreatedAt,
	}
}

// ToNotificacionResponse proyecta una notificación.
func ToNotificacionResponse(n *entity.Notificacion) *dto.NotificacionResponse {
	if n == nil {
		return nil
	}
	return &dto.NotificacionResponse{
		ID:        n.ID,
		TramiteID: n.TramiteID,
		Tipo:      n.Tipo,
		Titulo:    n.Titulo,
		Mensaje:   n.Mensaje,
		Link:      n.Link,
		Leida:     n.Leida,
		CreatedAt: n.CreatedAt,
	}
}

// ToHistorialResponse proyecta una entrada del historial.
func ToHistorialResponse(h *entity.EtapaHistorial) *dto.HistorialResponse {
	if h == nil {
		return nil
	}
	return &dto.HistorialResponse{
		ID:             h.ID,
		EstadoAnterior: h.EstadoAnterior,
		EstadoNuevo:    h.EstadoNuevo,
		Motivo:         h.Motivo,
		CreatedAt:      h.CreatedAt,
	}
}

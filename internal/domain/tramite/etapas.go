// Package tramite contiene la lógica pura del seguimiento de etapas de una
// constitución de S.A.S.: avance porcentual, estado visible y etapa en curso.
// Ninguna función tiene efectos; todo se deriva de los flags del expediente.
package tramite

import (
	"math"

	"github.com/gestorialegal/tramites-api/internal/domain/entity"
)

// Etapa describe una etapa del flujo registral: clave estable para la API y
// etiqueta para mostrar.
type Etapa struct {
	Clave    string
	Etiqueta string
}

// Claves de etapa (en el orden del flujo registral).
const (
	EtapaFormulario = "formulario_completo"
	EtapaNombre     = "nombre_reservado"
	EtapaCapital    = "capital_depositado"
	EtapaTasa       = "tasa_pagada"
	EtapaRevision   = "documentos_revisados"
	EtapaFirma      = "documentos_firmados"
	EtapaPresentado = "presentado_registro"
	EtapaInscripta  = "sociedad_inscripta"
)

// Etapas es la secuencia ordenada de las ocho etapas del trámite.
// El orden importa: define el avance y la "etapa en curso".
var Etapas = []Etapa{
	{EtapaFormulario, "Formulario de alta completo"},
	{EtapaNombre, "Reserva de denominación social"},
	{EtapaCapital, "Depósito del capital inicial"},
	{EtapaTasa, "Pago de la tasa registral"},
	{EtapaRevision, "Revisión de documentación"},
	{EtapaFirma, "Firma de la documentación"},
	{EtapaPresentado, "Presentación ante el registro"},
	{EtapaInscripta, "Sociedad inscripta"},
}

// Flags devuelve los ocho flags del trámite en el orden de Etapas.
func Flags(t *entity.Tramite) [8]bool {
	return [8]bool{
		t.FormularioCompleto,
		t.NombreReservado,
		t.CapitalDepositado,
		t.TasaPagada,
		t.DocumentosRevisados,
		t.DocumentosFirmados,
		t.PresentadoRegistro,
		t.SociedadInscripta,
	}
}

// SetFlag enciende o apaga la etapa indicada por clave. Devuelve false si la
// clave no existe. No valida orden: las etapas se marcan de forma independiente
// según avanza la gestión (decisión registrada en DESIGN.md).
func SetFlag(t *entity.Tramite, clave string, valor bool) bool {
	switch clave {
	case EtapaFormulario:
		t.FormularioCompleto = valor
	case EtapaNombre:
		t.NombreReservado = valor
	case EtapaCapital:
		t.CapitalDepositado = valor
	case EtapaTasa:
		t.TasaPagada = valor
	case EtapaRevision:
		t.DocumentosRevisados = valor
	case EtapaFirma:
		t.DocumentosFirmados = valor
	case EtapaPresentado:
		t.PresentadoRegistro = valor
	case EtapaInscripta:
		t.SociedadInscripta = valor
	default:
		return false
	}
	return true
}

// Progress devuelve el avance del trámite como porcentaje entero [0,100]:
// round(100 * etapas completas / 8).
func Progress(t *entity.Tramite) int {
	completas := 0
	for _, f := range Flags(t) {
		if f {
			completas++
		}
	}
	return int(math.Round(float64(completas) * 100 / float64(len(Etapas))))
}

// etiquetasEstado mapea el estado general almacenado a su etiqueta visible.
// Valores no mapeados pasan sin cambios.
var etiquetasEstado = map[string]string{
	entity.EstadoIniciado:            "Iniciado",
	entity.EstadoEnProceso:           "En proceso",
	entity.EstadoEsperandoCliente:    "Esperando al cliente",
	entity.EstadoEsperandoAprobacion: "Esperando aprobación",
	entity.EstadoCompletado:          "Completado",
	entity.EstadoCancelado:           "Cancelado",
}

// DisplayStatus deriva el estado visible del trámite:
//   - 100% de avance o sociedad inscripta -> "Completado", sin importar el enum almacenado.
//   - Formulario completo y avance parcial -> "En proceso".
//   - En cualquier otro caso, la etiqueta del estado general almacenado.
func DisplayStatus(t *entity.Tramite) string {
	if t.SociedadInscripta || Progress(t) == 100 {
		return "Completado"
	}
	if t.FormularioCompleto {
		return "En proceso"
	}
	if etiqueta, ok := etiquetasEstado[t.EstadoGeneral]; ok {
		return etiqueta
	}
	return t.EstadoGeneral
}

// CurrentStageLabel devuelve la etiqueta de la primera etapa incompleta en
// orden; si todas están completas, la etiqueta terminal. Escaneo lineal con
// corte temprano, sin efectos, estable ante llamadas repetidas.
func CurrentStageLabel(t *entity.Tramite) string {
	flags := Flags(t)
	for i, f := range flags {
		if !f {
			return Etapas[i].Etiqueta
		}
	}
	return Etapas[len(Etapas)-1].Etiqueta
}

package dto

import "github.com/shopspring/decimal"

// ConteoDTO par clave/cantidad para gráficos de torta o barras.
type ConteoDTO struct {
	Clave    string `json:"clave"`
	Cantidad int    `json:"cantidad"`
}

// IngresoMensualDTO ingresos aprobados de un mes.
type IngresoMensualDTO struct {
	Mes   string          `json:"mes"` // YYYY-MM
	Total decimal.Decimal `json:"total"`
}

// DashboardResponse agregados para el tablero del staff.
type DashboardResponse struct {
	TramitesPorEstado       []ConteoDTO         `json:"tramites_por_estado"`
	TramitesPorJurisdiccion []ConteoDTO         `json:"tramites_por_jurisdiccion"`
	IngresosPorMes          []IngresoMensualDTO `json:"ingresos_por_mes"`
	ValidacionesPendientes  int                 `json:"validaciones_pendientes"`
	DocumentosPendientes    int                 `json:"documentos_pendientes"`
	TramitesRecientes       []TramiteResponse   `json:"tramites_recientes"`
}

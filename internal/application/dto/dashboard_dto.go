package dto

import "github.com/shopspring/decimal"

// ShopDashboardDTO respuesta de GET /api/dashboard.
// Contiene los totales del día y del mes en curso, más el personal en línea.
type ShopDashboardDTO struct {
	ShopID string `json:"shop_id"`

	// Métricas del día actual (00:00 – 23:59)
	Today PeriodTotalsDTO `json:"today"`
	// Métricas del mes en curso (día 1 – hoy)
	Month PeriodTotalsDTO `json:"month"`

	OnlineCount int              `json:"online_count"`
	Online      []OnlineStaffDTO `json:"online"`

	// Metadatos del período
	DateLabel string `json:"date_label"` // ej: "Febrero 2026"
}

// PeriodTotalsDTO totales de un período. Salary ya está incluido en Expense.
type PeriodTotalsDTO struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Salary  decimal.Decimal `json:"salary"`
	Net     decimal.Decimal `json:"net"` // income - expense
}

// OnlineStaffDTO usuario cuya última marcación es una entrada.
type OnlineStaffDTO struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

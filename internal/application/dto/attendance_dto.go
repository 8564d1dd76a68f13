package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceLogResponse salida de una marcación.
type AttendanceLogResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Type      string    `json:"type"`
	ShopID    string    `json:"shop_id"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// PunchRequest entrada de POST /api/attendance/punch.
type PunchRequest struct {
	Type string `json:"type" validate:"required,oneof=IN OUT"`
}

// PayrollResponse gasto de nómina generado al cerrar un turno.
type PayrollResponse struct {
	TransactionID string          `json:"transaction_id"`
	Hours         decimal.Decimal `json:"hours"`
	Amount        decimal.Decimal `json:"amount"`
}

// PunchResponse marcación registrada y sus efectos.
type PunchResponse struct {
	Log      AttendanceLogResponse `json:"log"`
	Online   bool                  `json:"online"`
	Payroll  *PayrollResponse      `json:"payroll,omitempty"`
	Warnings []string              `json:"warnings,omitempty"`
}

// UpdateAttendanceRequest entrada de PATCH /api/attendance/:id.
type UpdateAttendanceRequest struct {
	Type      *string    `json:"type" validate:"omitempty,oneof=IN OUT"`
	Timestamp *time.Time `json:"timestamp"`
	Note      *string    `json:"note"`
}

// AttendanceChangeResponse estado en línea recalculado tras editar o borrar una marcación.
type AttendanceChangeResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Online bool   `json:"online"`
}

// UpdateSettingRequest entrada de PUT /api/settings/:key.
type UpdateSettingRequest struct {
	Value json.RawMessage `json:"value" validate:"required"`
}
